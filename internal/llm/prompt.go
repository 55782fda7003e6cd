package llm

import (
	"fmt"
	"strings"
)

// Input is the subset of an application the model sees.
type Input struct {
	ResumeDetails  string
	JobDescription string
	CompanyName    string
	Position       string
}

// BuildPrompt renders the generation prompt.
func BuildPrompt(in Input) string {
	var sb strings.Builder
	sb.WriteString("You are an expert career coach. Using the candidate details and the job description below, ")
	sb.WriteString("write a tailored résumé and a one-page cover letter.\n")
	sb.WriteString(`Respond with a JSON object of the form {"resume": string, "coverLetter": string} and nothing else.` + "\n\n")

	if in.CompanyName != "" || in.Position != "" {
		fmt.Fprintf(&sb, "Target role: %s at %s\n\n", orUnknown(in.Position), orUnknown(in.CompanyName))
	}
	fmt.Fprintf(&sb, "Candidate details:\n%s\n\n", strings.TrimSpace(in.ResumeDetails))
	fmt.Fprintf(&sb, "Job description:\n%s\n", strings.TrimSpace(in.JobDescription))
	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "(unspecified)"
	}
	return s
}
