package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobtracker/internal/auth"
)

var tokenUserID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for an existing user id",
	Long:  "Signs a token with JWT_SECRET for local testing and scripts. No password check is made.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user-id", "u", "", "User ID (required)")
	_ = tokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, _ := bootstrap()

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	token, _, err := tokens.Generate(tokenUserID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
