package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// MessageCommandHandler encapsulates logic for one-shot message envelope
// operations via CLI.
type MessageCommandHandler struct {
	codec  envelope.Codec
	logger logger.Logger
}

// NewMessageCommandHandler initializes a new MessageCommandHandler with
// logging and the envelope codec.
func NewMessageCommandHandler() (*MessageCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	envelopeCodec, err := setupCodec(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create envelope codec: %w", err)
	}

	return &MessageCommandHandler{
		codec:  envelopeCodec,
		logger: loggerInstance,
	}, nil
}

// EncryptMessageCmd seals a short message to a public key with the direct
// RSA path
func (commandHandler *MessageCommandHandler) EncryptMessageCmd(cmd *cobra.Command, _ []string) {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: %v", err)
		return
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		commandHandler.logger.Error("invalid message flag: %v", err)
		return
	}
	copyToClipboard, err := cmd.Flags().GetBool("copy")
	if err != nil {
		commandHandler.logger.Error("invalid copy flag: %v", err)
		return
	}

	publicKeyPEM, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	env, err := commandHandler.codec.WrapDirectRSA(publicKeyPEM, []byte(message))
	if err != nil {
		var sizeErr *envelope.PayloadSizeError
		if errors.As(err, &sizeErr) {
			commandHandler.logger.Error("message of ", sizeErr.Size, " bytes exceeds the ", sizeErr.Limit,
				" byte limit of a ", sizeErr.KeyBits, "-bit key, use encrypt-file for larger payloads")
			return
		}
		commandHandler.logger.Error("%v", err)
		return
	}

	encoded := env.Encode()
	fmt.Println(string(encoded))
	if copyToClipboard {
		if err := clipboard.WriteAll(string(encoded)); err != nil {
			commandHandler.logger.Warn("failed to copy envelope to clipboard: ", err)
		} else {
			commandHandler.logger.Info("Envelope copied to clipboard")
		}
	}
}

// DecryptMessageCmd opens an envelope from a file or the clipboard,
// dispatching on its format tag
func (commandHandler *MessageCommandHandler) DecryptMessageCmd(cmd *cobra.Command, _ []string) {
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		commandHandler.logger.Error("invalid private-key flag: %v", err)
		return
	}
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}

	var raw []byte
	if inputFile != "" {
		raw, err = os.ReadFile(filepath.Clean(inputFile))
		if err != nil {
			commandHandler.logger.Error("%v", err)
			return
		}
	} else {
		text, err := clipboard.ReadAll()
		if err != nil {
			commandHandler.logger.Error("failed to read clipboard: %v", err)
			return
		}
		raw = []byte(text)
	}

	format, ok := envelope.DetectFormat(raw)
	if !ok {
		commandHandler.logger.Error("input does not carry a recognized envelope tag")
		return
	}

	var plain []byte
	switch format {
	case envelope.FormatAES256:
		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			commandHandler.logger.Error("%v", err)
			return
		}
		plain, err = commandHandler.codec.UnwrapPasswordAES(passphrase, raw)
		if err != nil {
			commandHandler.logger.Error("%v", err)
			return
		}
	case envelope.FormatRSA, envelope.FormatHybrid:
		privateKeyPEM, err := os.ReadFile(filepath.Clean(privateKeyPath))
		if err != nil {
			commandHandler.logger.Error("%v", err)
			return
		}
		if format == envelope.FormatHybrid {
			plain, err = commandHandler.codec.UnwrapHybrid(privateKeyPEM, raw)
		} else {
			plain, err = commandHandler.codec.UnwrapDirectRSA(privateKeyPEM, raw)
		}
		if err != nil {
			commandHandler.logger.Error("%v", err)
			return
		}
	}

	fmt.Println(string(plain))
}

// EncryptPasswordCmd seals a message of any size under a passphrase
func (commandHandler *MessageCommandHandler) EncryptPasswordCmd(cmd *cobra.Command, _ []string) {
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		commandHandler.logger.Error("invalid message flag: %v", err)
		return
	}

	passphrase, err := readPassphrase("Passphrase: ")
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	env, err := commandHandler.codec.WrapPasswordAES(passphrase, []byte(message))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	fmt.Println(string(env.Encode()))
}

// InitMessageCommands registers message envelope commands
func InitMessageCommands(rootCmd *cobra.Command) error {
	handler, err := NewMessageCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create message command handler %w", err)
	}

	var encryptMessageCmd = &cobra.Command{
		Use:   "encrypt-message",
		Short: "Encrypt a short message to a public key",
		Run:   handler.EncryptMessageCmd,
	}
	encryptMessageCmd.Flags().StringP("public-key", "", "", "Path to recipient RSA public key")
	encryptMessageCmd.Flags().StringP("message", "", "", "Message to encrypt")
	encryptMessageCmd.Flags().BoolP("copy", "", false, "Also copy the envelope to the clipboard")
	rootCmd.AddCommand(encryptMessageCmd)

	var decryptMessageCmd = &cobra.Command{
		Use:   "decrypt-message",
		Short: "Decrypt an envelope from a file or the clipboard",
		Run:   handler.DecryptMessageCmd,
	}
	decryptMessageCmd.Flags().StringP("private-key", "", "", "Path to RSA private key")
	decryptMessageCmd.Flags().StringP("input-file", "", "", "Path to envelope file (clipboard when omitted)")
	rootCmd.AddCommand(decryptMessageCmd)

	var encryptPasswordCmd = &cobra.Command{
		Use:   "encrypt-password",
		Short: "Encrypt a message of any size under a passphrase",
		Run:   handler.EncryptPasswordCmd,
	}
	encryptPasswordCmd.Flags().StringP("message", "", "", "Message to encrypt")
	rootCmd.AddCommand(encryptPasswordCmd)
	return nil
}
