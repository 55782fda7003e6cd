// Package llm produces tailored résumé and cover-letter text with Gemini.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Documents is the generated pair stored back on an application.
type Documents struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"coverLetter"`
}

// Generator turns an application's inputs into generated documents.
type Generator interface {
	GenerateDocuments(ctx context.Context, in Input) (Documents, error)
	Close() error
}

// GeminiClient implements Generator on the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini client for model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// GenerateDocuments asks for both documents in one JSON response.
func (c *GeminiClient) GenerateDocuments(ctx context.Context, in Input) (Documents, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(in)))
	if err != nil {
		return Documents{}, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return Documents{}, err
	}
	return ParseDocuments(text)
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ParseDocuments decodes the model's JSON answer, tolerating a markdown fence.
func ParseDocuments(text string) (Documents, error) {
	var d Documents
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &d); err != nil {
		return Documents{}, fmt.Errorf("failed to parse generated documents: %w", err)
	}
	if strings.TrimSpace(d.Resume) == "" && strings.TrimSpace(d.CoverLetter) == "" {
		return Documents{}, fmt.Errorf("model returned empty documents")
	}
	return d, nil
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
