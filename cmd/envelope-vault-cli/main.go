// Package main is the entry point for the envelope-vault-cli application.
// It initializes the root command, registers the key, message, file, session
// and entropy sub-commands and executes the command-line interface.
package main

import (
	"fmt"
	"log"

	commands "github.com/ttwe77/Multiple-EncryptionDecryption-Tool/cmd/envelope-vault-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "envelope-vault-cli",
		Short: "Hybrid RSA/AES envelope encryption CLI tool",
		Long: `envelope-vault-cli exchanges encrypted messages and files through
text envelopes. Short messages travel under RSA-OAEP directly, files of any
size under a hybrid RSA/AES-256-CBC envelope, and passphrase-protected
payloads under an AES-256 envelope compatible with
"openssl enc -aes-256-cbc -md sha256".

Run "envelope-vault-cli session" for the interactive messaging workflow.`,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitKeysCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize keys commands: %w", err)
	}

	if err := commands.InitMessageCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize message commands: %w", err)
	}

	if err := commands.InitFileCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize file commands: %w", err)
	}

	if err := commands.InitSessionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize session commands: %w", err)
	}

	if err := commands.InitEntropyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize entropy commands: %w", err)
	}

	return nil
}
