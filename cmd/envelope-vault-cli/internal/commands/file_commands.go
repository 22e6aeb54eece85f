package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// FileCommandHandler encapsulates logic for hybrid file envelope operations
// via CLI.
type FileCommandHandler struct {
	codec  envelope.Codec
	logger logger.Logger
}

// NewFileCommandHandler initializes a new FileCommandHandler with logging
// and the envelope codec.
func NewFileCommandHandler() (*FileCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	envelopeCodec, err := setupCodec(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create envelope codec: %w", err)
	}

	return &FileCommandHandler{
		codec:  envelopeCodec,
		logger: loggerInstance,
	}, nil
}

// EncryptFileCmd hybrid-encrypts a file of any size to a public key
func (commandHandler *FileCommandHandler) EncryptFileCmd(cmd *cobra.Command, _ []string) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: %v", err)
		return
	}

	publicKeyPEM, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	outPath, err := commandHandler.codec.EncryptFile(publicKeyPEM, inputFile)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Encrypted data path ", outPath)
}

// DecryptFileCmd decrypts a hybrid envelope file with a private key
func (commandHandler *FileCommandHandler) DecryptFileCmd(cmd *cobra.Command, _ []string) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		commandHandler.logger.Error("invalid private-key flag: %v", err)
		return
	}

	privateKeyPEM, err := os.ReadFile(filepath.Clean(privateKeyPath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	outPath, err := commandHandler.codec.DecryptFile(privateKeyPEM, inputFile, outputFile)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Decrypted data path ", outPath)
}

// InitFileCommands registers hybrid file envelope commands
func InitFileCommands(rootCmd *cobra.Command) error {
	handler, err := NewFileCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create file command handler %w", err)
	}

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt-file",
		Short: "Hybrid-encrypt a file of any size to a public key",
		Run:   handler.EncryptFileCmd,
	}
	encryptFileCmd.Flags().StringP("input-file", "", "", "Path to input file which needs to be encrypted")
	encryptFileCmd.Flags().StringP("public-key", "", "", "Path to recipient RSA public key")
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt-file",
		Short: "Decrypt a hybrid envelope file",
		Run:   handler.DecryptFileCmd,
	}
	decryptFileCmd.Flags().StringP("input-file", "", "", "Path to encrypted file")
	decryptFileCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file (derived from input when omitted)")
	decryptFileCmd.Flags().StringP("private-key", "", "", "Path to RSA private key")
	rootCmd.AddCommand(decryptFileCmd)
	return nil
}
