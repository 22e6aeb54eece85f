// Package codec implements the envelope codec: it frames and parses the
// three self-describing wire formats and orchestrates the RSA and AES
// processors for the message-, key- and file-level workflows.
package codec

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/cryptoalg"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

const pemPublicKeyHeader = "-----BEGIN PUBLIC KEY-----"

// envelopeCodec implements envelope.Codec on top of the cryptographic
// processors. It holds no key material of its own; keys are passed in per
// call and scoped material (hybrid key||IV) is wiped before returning.
type envelopeCodec struct {
	rsaProcessor cryptoalg.RSAProcessor
	aesProcessor cryptoalg.AESProcessor
	logger       logger.Logger
}

// NewEnvelopeCodec creates an envelope codec over the given processors.
func NewEnvelopeCodec(rsaProcessor cryptoalg.RSAProcessor, aesProcessor cryptoalg.AESProcessor, logger logger.Logger) (envelope.Codec, error) {
	if rsaProcessor == nil || aesProcessor == nil {
		return nil, envelope.ErrCollaboratorUnavailable
	}
	return &envelopeCodec{
		rsaProcessor: rsaProcessor,
		aesProcessor: aesProcessor,
		logger:       logger,
	}, nil
}

// WrapDirectRSA encrypts a short plaintext directly with RSA-OAEP-SHA256.
func (c *envelopeCodec) WrapDirectRSA(publicKeyPEM, plaintext []byte) (*envelope.Envelope, error) {
	publicKey, err := c.rsaProcessor.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	bits := publicKey.N.BitLen()
	limit := envelope.MaxPlainBytes(bits)
	if len(plaintext) > limit {
		return nil, &envelope.PayloadSizeError{Size: len(plaintext), Limit: limit, KeyBits: bits}
	}

	cipherText, err := c.rsaProcessor.Encrypt(plaintext, publicKey)
	if err != nil {
		return nil, fmt.Errorf("RSA encryption failed: %w", err)
	}

	return &envelope.Envelope{Format: envelope.FormatRSA, Blocks: [][]byte{cipherText}}, nil
}

// UnwrapDirectRSA decodes an RSA-ENC envelope and decrypts it with the
// private key. Every decryption failure surfaces as the same opaque error so
// callers cannot distinguish padding failures from wrong keys.
func (c *envelopeCodec) UnwrapDirectRSA(privateKeyPEM, raw []byte) ([]byte, error) {
	env, err := envelope.Parse(raw)
	if err != nil {
		return nil, err
	}
	if env.Format != envelope.FormatRSA {
		return nil, envelope.ErrMalformedEnvelope
	}

	privateKey, err := c.rsaProcessor.ParsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	plainText, err := c.rsaProcessor.Decrypt(env.Blocks[0], privateKey)
	if err != nil {
		c.logger.Warn("direct RSA unwrap failed")
		return nil, envelope.ErrAsymmetricDecryptFailed
	}
	return plainText, nil
}

// WrapPasswordAES encrypts a payload of any size with salted AES-256-CBC
// keyed from the passphrase.
func (c *envelopeCodec) WrapPasswordAES(passphrase string, plaintext []byte) (*envelope.Envelope, error) {
	cipherText, err := c.aesProcessor.EncryptWithPassphrase(passphrase, plaintext)
	if err != nil {
		return nil, fmt.Errorf("AES encryption failed: %w", err)
	}
	return &envelope.Envelope{Format: envelope.FormatAES256, Blocks: [][]byte{cipherText}}, nil
}

// UnwrapPasswordAES decodes an AES256-ENC envelope and decrypts it with the
// passphrase. Wrong passphrases and tampered ciphertext yield the same
// opaque error.
func (c *envelopeCodec) UnwrapPasswordAES(passphrase string, raw []byte) ([]byte, error) {
	env, err := envelope.Parse(raw)
	if err != nil {
		return nil, err
	}
	if env.Format != envelope.FormatAES256 {
		return nil, envelope.ErrMalformedEnvelope
	}

	plainText, err := c.aesProcessor.DecryptWithPassphrase(passphrase, env.Blocks[0])
	if err != nil {
		c.logger.Warn("passphrase AES unwrap failed")
		return nil, envelope.ErrSymmetricDecryptFailed
	}
	return plainText, nil
}

// WrapHybrid encrypts bulk data under a fresh 32-byte key and 16-byte IV and
// wraps key||IV with RSA-OAEP-SHA256. Key material is generated per call and
// wiped before returning; reuse across calls would be a confidentiality
// violation.
func (c *envelopeCodec) WrapHybrid(publicKeyPEM, data []byte) (*envelope.Envelope, error) {
	publicKey, err := c.rsaProcessor.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	keyMaterial := make([]byte, envelope.KeyMaterialSize)
	defer zeroBytes(keyMaterial)
	if _, err := rand.Read(keyMaterial); err != nil {
		return nil, fmt.Errorf("failed to generate symmetric key material: %w", err)
	}
	key := keyMaterial[:envelope.SymmetricKeySize]
	iv := keyMaterial[envelope.SymmetricKeySize:]

	cipherText, err := c.aesProcessor.EncryptCBC(data, key, iv)
	if err != nil {
		return nil, fmt.Errorf("AES encryption failed: %w", err)
	}

	wrappedKey, err := c.rsaProcessor.Encrypt(keyMaterial, publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap symmetric key: %w", err)
	}

	return &envelope.Envelope{
		Format: envelope.FormatHybrid,
		Blocks: [][]byte{wrappedKey, cipherText},
	}, nil
}

// UnwrapHybrid decodes a HYBRID-RSA-AES envelope, unwraps the key material
// and decrypts the data. The recovered key||IV blob must be exactly 48
// bytes; anything else is rejected as corrupt, never truncated or padded.
func (c *envelopeCodec) UnwrapHybrid(privateKeyPEM, raw []byte) ([]byte, error) {
	env, err := envelope.Parse(raw)
	if err != nil {
		return nil, err
	}
	if env.Format != envelope.FormatHybrid {
		return nil, envelope.ErrMalformedEnvelope
	}

	privateKey, err := c.rsaProcessor.ParsePrivateKeyPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	keyMaterial, err := c.rsaProcessor.Decrypt(env.Blocks[0], privateKey)
	if err != nil {
		c.logger.Warn("hybrid key unwrap failed")
		return nil, envelope.ErrAsymmetricDecryptFailed
	}
	defer zeroBytes(keyMaterial)

	if len(keyMaterial) != envelope.KeyMaterialSize {
		return nil, envelope.ErrCorruptKeyMaterial
	}
	key := keyMaterial[:envelope.SymmetricKeySize]
	iv := keyMaterial[envelope.SymmetricKeySize:]

	plainText, err := c.aesProcessor.DecryptCBC(env.Blocks[1], key, iv)
	if err != nil {
		c.logger.Warn("hybrid data decryption failed")
		return nil, envelope.ErrSymmetricDecryptFailed
	}
	return plainText, nil
}

// EncryptFile hybrid-encrypts the file at path and writes the envelope to
// path + ".enc".
func (c *envelopeCodec) EncryptFile(publicKeyPEM []byte, path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("unable to read input file: %w", err)
	}

	env, err := c.WrapHybrid(publicKeyPEM, data)
	if err != nil {
		return "", err
	}

	outPath := path + envelope.EncryptedFileSuffix
	if err := os.WriteFile(outPath, env.Encode(), 0600); err != nil {
		return "", fmt.Errorf("unable to write encrypted file: %w", err)
	}

	c.logger.Info("Encrypted file written to ", outPath)
	return outPath, nil
}

// DecryptFile decrypts a hybrid envelope file. When outPath is empty the
// output path is derived from path with the ".enc" suffix replaced by
// ".dec" (or ".dec" appended when the suffix is absent).
func (c *envelopeCodec) DecryptFile(privateKeyPEM []byte, path, outPath string) (string, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("unable to read encrypted file: %w", err)
	}

	data, err := c.UnwrapHybrid(privateKeyPEM, raw)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(path, envelope.EncryptedFileSuffix) + envelope.DecryptedFileSuffix
	}
	if err := os.WriteFile(outPath, data, 0600); err != nil {
		return "", fmt.Errorf("unable to write decrypted file: %w", err)
	}

	c.logger.Info("Decrypted file written to ", outPath)
	return outPath, nil
}

// DetectKeySize reports the modulus bit length of a public key PEM. A
// detection failure falls back to the documented 2048-bit default so the
// size check can still run; the boolean tells callers the value is only an
// approximation in that case.
func (c *envelopeCodec) DetectKeySize(publicKeyPEM []byte) (int, bool) {
	publicKey, err := c.rsaProcessor.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		c.logger.Warn("key size detection failed, assuming RSA-", envelope.DefaultKeyBits)
		return envelope.DefaultKeyBits, false
	}
	return publicKey.N.BitLen(), true
}

// WrapPublicKey prepares a public key PEM for transport: as-is when the
// passphrase is empty, otherwise wrapped in an AES256-ENC envelope.
func (c *envelopeCodec) WrapPublicKey(publicKeyPEM []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return publicKeyPEM, nil
	}
	env, err := c.WrapPasswordAES(passphrase, publicKeyPEM)
	if err != nil {
		return nil, err
	}
	return env.Encode(), nil
}

// ImportPublicKey recognizes a plain PEM public key, an AES256-ENC wrapping
// or an RSA-ENC wrapping and returns the imported key with its detected bit
// length and fingerprints.
func (c *envelopeCodec) ImportPublicKey(text []byte, passphrase string, privateKeyPEM []byte) (*keys.RemotePublicKey, error) {
	trimmed := bytes.TrimSpace(text)

	if bytes.HasPrefix(trimmed, []byte(pemPublicKeyHeader)) {
		return c.remoteKeyFromPEM(trimmed)
	}

	format, ok := envelope.DetectFormat(trimmed)
	if !ok {
		return nil, envelope.ErrMalformedEnvelope
	}

	switch format {
	case envelope.FormatAES256:
		pemBytes, err := c.UnwrapPasswordAES(passphrase, trimmed)
		if err != nil {
			return nil, err
		}
		return c.remoteKeyFromPEM(pemBytes)
	case envelope.FormatRSA:
		if len(privateKeyPEM) == 0 {
			return nil, errors.New("RSA-ENC wrapped key requires a local private key to unwrap")
		}
		pemBytes, err := c.UnwrapDirectRSA(privateKeyPEM, trimmed)
		if err != nil {
			return nil, err
		}
		return c.remoteKeyFromPEM(pemBytes)
	default:
		return nil, envelope.ErrMalformedEnvelope
	}
}

func (c *envelopeCodec) remoteKeyFromPEM(pemBytes []byte) (*keys.RemotePublicKey, error) {
	if _, err := c.rsaProcessor.ParsePublicKeyPEM(pemBytes); err != nil {
		return nil, fmt.Errorf("imported content is not a usable public key: %w", err)
	}
	bits, _ := c.DetectKeySize(pemBytes)
	return keys.NewRemotePublicKey(pemBytes, bits), nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
