package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/cryptoalg"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/cryptography"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// KeysCommandHandler encapsulates logic for handling key management via CLI.
type KeysCommandHandler struct {
	rsaProcessor cryptoalg.RSAProcessor
	codec        envelope.Codec
	logger       logger.Logger
}

// NewKeysCommandHandler initializes a new KeysCommandHandler with logging,
// an RSA processor and the envelope codec.
func NewKeysCommandHandler() (*KeysCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	envelopeCodec, err := setupCodec(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create envelope codec: %w", err)
	}

	return &KeysCommandHandler{
		rsaProcessor: rsaProcessor,
		codec:        envelopeCodec,
		logger:       loggerInstance,
	}, nil
}

// GenerateKeysCmd generates an RSA key pair and persists it in a selected directory
func (commandHandler *KeysCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		commandHandler.logger.Error("invalid key-size flag: %v", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag: %v", err)
		return
	}

	uniqueID := uuid.New()

	privateKey, publicKey, err := commandHandler.rsaProcessor.GenerateKeys(keySize)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	privateKeyFilePath := fmt.Sprintf("%s/%s-private-key.pem", keyDir, uniqueID.String())
	if err = commandHandler.rsaProcessor.SavePrivateKeyToFile(privateKey, privateKeyFilePath); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	publicKeyFilePath := fmt.Sprintf("%s/%s-public-key.pem", keyDir, uniqueID.String())
	if err = commandHandler.rsaProcessor.SavePublicKeyToFile(publicKey, publicKeyFilePath); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Key pair written to ", keyDir, " with limit of ", envelope.MaxPlainBytes(keySize), " bytes per direct message")
}

// InspectKeyCmd reports the size, message limit and fingerprints of a public key
func (commandHandler *KeysCommandHandler) InspectKeyCmd(cmd *cobra.Command, _ []string) {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: %v", err)
		return
	}

	pemBytes, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	bits, detected := commandHandler.codec.DetectKeySize(pemBytes)
	info := keys.NewRemotePublicKey(pemBytes, bits)

	if !detected {
		commandHandler.logger.Warn("Key size could not be detected, assuming ", bits, " bits")
	}
	commandHandler.logger.Info("Key size: ", bits, " bits")
	commandHandler.logger.Info("Direct message limit: ", envelope.MaxPlainBytes(bits), " bytes")
	commandHandler.logger.Info("SHA-256 fingerprint: ", info.SHA256)
	commandHandler.logger.Info("SHA-512 fingerprint: ", info.SHA512)
}

// ExportPublicKeyCmd renders a public key for transport, optionally wrapped
// under a passphrase
func (commandHandler *KeysCommandHandler) ExportPublicKeyCmd(cmd *cobra.Command, _ []string) {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	protect, err := cmd.Flags().GetBool("protect")
	if err != nil {
		commandHandler.logger.Error("invalid protect flag: %v", err)
		return
	}

	pemBytes, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	passphrase := ""
	if protect {
		passphrase, err = readPassphrase("Passphrase for key wrapping: ")
		if err != nil {
			commandHandler.logger.Error("%v", err)
			return
		}
	}

	wrapped, err := commandHandler.codec.WrapPublicKey(pemBytes, passphrase)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if outputFile == "" {
		fmt.Println(string(wrapped))
		return
	}
	if err = os.WriteFile(outputFile, wrapped, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	commandHandler.logger.Info("Exported key path ", outputFile)
}

// InitKeysCommands registers key management commands
func InitKeysCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeysCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create keys command handler %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair",
		Run:   handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("key-size", "", envelope.DefaultKeyBits, "RSA key size in bits (2048, 4096 or 8192)")
	generateKeysCmd.Flags().StringP("key-dir", "", "", "Directory to store the RSA keys")
	rootCmd.AddCommand(generateKeysCmd)

	var inspectKeyCmd = &cobra.Command{
		Use:   "inspect-key",
		Short: "Report the size, message limit and fingerprints of a public key",
		Run:   handler.InspectKeyCmd,
	}
	inspectKeyCmd.Flags().StringP("public-key", "", "", "Path to RSA public key")
	rootCmd.AddCommand(inspectKeyCmd)

	var exportPublicKeyCmd = &cobra.Command{
		Use:   "export-public-key",
		Short: "Render a public key for transport, optionally passphrase wrapped",
		Run:   handler.ExportPublicKeyCmd,
	}
	exportPublicKeyCmd.Flags().StringP("public-key", "", "", "Path to RSA public key")
	exportPublicKeyCmd.Flags().StringP("output-file", "", "", "Path to output file (stdout when omitted)")
	exportPublicKeyCmd.Flags().BoolP("protect", "", false, "Wrap the key in a passphrase envelope")
	rootCmd.AddCommand(exportPublicKeyCmd)
	return nil
}
