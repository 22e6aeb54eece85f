package v1

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BasePath is the URL prefix of this API version.
const BasePath = "/api/v1/envelope-vault"

var dtoValidator = validator.New()

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is the generic informational payload.
type InfoResponse struct {
	Message string `json:"message"`
}

// GenerateKeyPairRequest asks for a fresh RSA key pair.
type GenerateKeyPairRequest struct {
	KeySize int `json:"keySize" validate:"omitempty,oneof=2048 4096 8192"`
}

// Validate checks the request fields
func (r *GenerateKeyPairRequest) Validate() error {
	if err := dtoValidator.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// KeyPairResponse carries a freshly generated key pair. The private key is
// returned to the caller and never stored server-side.
type KeyPairResponse struct {
	PublicKeyPEM    string `json:"publicKeyPem"`
	PrivateKeyPEM   string `json:"privateKeyPem"`
	KeyBits         int    `json:"keyBits"`
	MaxMessageBytes int    `json:"maxMessageBytes"`
}

// InspectKeyRequest asks for the properties of a public key.
type InspectKeyRequest struct {
	PublicKeyPEM string `json:"publicKeyPem" validate:"required"`
}

// Validate checks the request fields
func (r *InspectKeyRequest) Validate() error {
	if err := dtoValidator.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// KeyInfoResponse describes an inspected public key.
type KeyInfoResponse struct {
	KeyBits         int    `json:"keyBits"`
	SizeDetected    bool   `json:"sizeDetected"`
	MaxMessageBytes int    `json:"maxMessageBytes"`
	SHA256          string `json:"sha256Fingerprint"`
	SHA512          string `json:"sha512Fingerprint"`
}

// EncryptRequest asks for a plaintext to be sealed into an envelope. The
// format selects the path: AES256-ENC needs a passphrase, RSA-ENC and
// HYBRID-RSA-AES need a public key.
type EncryptRequest struct {
	Format       string `json:"format" validate:"required,oneof=AES256-ENC RSA-ENC HYBRID-RSA-AES"`
	PublicKeyPEM string `json:"publicKeyPem" validate:"required_unless=Format AES256-ENC"`
	Passphrase   string `json:"passphrase" validate:"required_if=Format AES256-ENC"`
	Plaintext    string `json:"plaintext" validate:"required,base64"`
}

// Validate checks the request fields
func (r *EncryptRequest) Validate() error {
	if err := dtoValidator.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// EnvelopeResponse carries an encoded envelope.
type EnvelopeResponse struct {
	Envelope string `json:"envelope"`
	Format   string `json:"format"`
}

// DecryptRequest asks for an envelope to be opened. The format tag inside
// the envelope decides whether the passphrase or the private key is used.
type DecryptRequest struct {
	Envelope      string `json:"envelope" validate:"required"`
	PrivateKeyPEM string `json:"privateKeyPem"`
	Passphrase    string `json:"passphrase"`
}

// Validate checks the request fields
func (r *DecryptRequest) Validate() error {
	if err := dtoValidator.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// PlaintextResponse carries a recovered plaintext.
type PlaintextResponse struct {
	Plaintext string `json:"plaintext"` // base64
	Format    string `json:"format"`
}
