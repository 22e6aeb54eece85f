package commands

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/app"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/audit"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/codec"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/cryptography"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/persistence"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/config"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// setupCodec builds the envelope codec over fresh RSA and AES processors.
func setupCodec(loggerInstance logger.Logger) (envelope.Codec, error) {
	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	aesProcessor, err := cryptography.NewAESProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	return codec.NewEnvelopeCodec(rsaProcessor, aesProcessor, loggerInstance)
}

// setupSession assembles a full interactive session. auditPath selects the
// sqlite audit database; an empty path disables auditing entirely.
func setupSession(loggerInstance logger.Logger, auditPath string) (*app.Session, error) {
	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	aesProcessor, err := cryptography.NewAESProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	envelopeCodec, err := codec.NewEnvelopeCodec(rsaProcessor, aesProcessor, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create envelope codec: %w", err)
	}

	keyProvider, err := cryptography.NewKeyProvider(rsaProcessor, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key provider: %w", err)
	}

	var auditRepo audit.Repository
	if auditPath != "" {
		db, err := persistence.NewDBConnection(config.DatabaseSettings{Path: auditPath})
		if err != nil {
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		auditRepo, err = persistence.NewGormAuditRepository(db, loggerInstance)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit repository: %w", err)
		}
	}

	return app.NewSession(envelopeCodec, keyProvider, auditRepo, loggerInstance)
}

// readPassphrase prompts for a passphrase without echoing it. Falls back to
// a plain line read when stdin is not a terminal (piped input).
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return line, nil
}
