package cryptography

import (
	"fmt"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/cryptoalg"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// keyProvider implements keys.Provider on top of the RSA processor, sealing
// the freshly generated private key PEM straight into a memguard enclave.
type keyProvider struct {
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewKeyProvider creates a key provider backed by the given RSA processor.
func NewKeyProvider(rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.Provider, error) {
	if rsaProcessor == nil {
		return nil, fmt.Errorf("rsa processor is required")
	}
	return &keyProvider{
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// Generate creates an RSA key pair at the requested strength. The private
// PEM buffer is consumed (and wiped) by the enclave; only the enclave and
// the public PEM leave this function.
func (p *keyProvider) Generate(bits int) (*keys.KeyPair, error) {
	switch bits {
	case 2048, 4096, 8192:
	default:
		return nil, fmt.Errorf("unsupported RSA key size: %d bits", bits)
	}

	privateKey, publicKey, err := p.rsaProcessor.GenerateKeys(bits)
	if err != nil {
		return nil, err
	}

	publicPEM, err := p.rsaProcessor.EncodePublicKeyPEM(publicKey)
	if err != nil {
		return nil, err
	}
	privatePEM := p.rsaProcessor.EncodePrivateKeyPEM(privateKey)

	return keys.NewKeyPair(privatePEM, publicPEM, bits), nil
}
