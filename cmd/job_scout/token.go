package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/server"
)

var tokenExpirationHours int

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint an access token for a user",
	Long:  `Sign a bearer token for the given user UUID using JWT_SECRET. Intended for local development and API testing.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().IntVar(&tokenExpirationHours, "expires", 24, "Token lifetime in hours")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, args []string) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	token, err := server.NewJWTService(secret, tokenExpirationHours).GenerateToken(userID)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
