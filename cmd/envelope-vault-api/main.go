// cmd/envelope-vault-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/api/rest/v1"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/codec"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/cryptography"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/config"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	envelopeCodec, keyProvider, err := initializeDependencies(log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	return startServerWithGracefulShutdown(restConfig, envelopeCodec, keyProvider, log)
}

// initializeDependencies sets up the envelope codec and key provider. The
// API is stateless, so no database or key store is opened here.
func initializeDependencies(log logger.Logger) (envelope.Codec, keys.Provider, error) {
	rsaProcessor, err := cryptography.NewRSAProcessor(log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	aesProcessor, err := cryptography.NewAESProcessor(log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	envelopeCodec, err := codec.NewEnvelopeCodec(rsaProcessor, aesProcessor, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create envelope codec: %w", err)
	}

	keyProvider, err := cryptography.NewKeyProvider(rsaProcessor, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create key provider: %w", err)
	}

	log.Info("Envelope codec initialized successfully")
	return envelopeCodec, keyProvider, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, envelopeCodec envelope.Codec, keyProvider keys.Provider, log logger.Logger) error {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1.SetupRoutes(r, envelopeCodec, keyProvider)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
