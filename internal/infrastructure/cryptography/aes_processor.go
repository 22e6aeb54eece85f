package cryptography

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/cryptoalg"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// opensslSaltedMagic prefixes the passphrase container produced by
// `openssl enc -salt`. The 8-byte salt follows immediately.
const opensslSaltedMagic = "Salted__"

const opensslSaltSize = 8

// aesProcessor struct that implements the AESProcessor interface
type aesProcessor struct {
	logger logger.Logger
}

// NewAESProcessor creates and returns a new instance of aesProcessor
func NewAESProcessor(logger logger.Logger) (cryptoalg.AESProcessor, error) {
	return &aesProcessor{
		logger: logger,
	}, nil
}

// GenerateKey generates a random AES key of the specified size.
func (a *aesProcessor) GenerateKey(keySize int) ([]byte, error) {
	if keySize != 16 && keySize != 24 && keySize != 32 {
		return nil, fmt.Errorf("invalid AES key size: %d bytes", keySize)
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate AES key: %w", err)
	}
	return key, nil
}

// EncryptCBC encrypts data with AES-CBC under the given raw key and IV,
// applying PKCS#7 padding.
func (a *aesProcessor) EncryptCBC(data, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid IV length: expected %d bytes, got %d", aes.BlockSize, len(iv))
	}

	padded := padPKCS7(data, aes.BlockSize)
	cipherText := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(cipherText, padded)

	return cipherText, nil
}

// DecryptCBC decrypts AES-CBC ciphertext with the given raw key and IV and
// strips the PKCS#7 padding.
func (a *aesProcessor) DecryptCBC(cipherText, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid IV length: expected %d bytes, got %d", aes.BlockSize, len(iv))
	}
	if len(cipherText) == 0 || len(cipherText)%aes.BlockSize != 0 {
		return nil, errors.New("ciphertext is not a whole number of AES blocks")
	}

	plainText := make([]byte, len(cipherText))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plainText, cipherText)

	return unpadPKCS7(plainText, aes.BlockSize)
}

// EncryptWithPassphrase encrypts data with AES-256-CBC under a key and IV
// derived from the passphrase and a fresh salt, in the OpenSSL salted
// container format.
func (a *aesProcessor) EncryptWithPassphrase(passphrase string, data []byte) ([]byte, error) {
	salt := make([]byte, opensslSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, iv := deriveKeyAndIV([]byte(passphrase), salt)
	cipherText, err := a.EncryptCBC(data, key, iv)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(opensslSaltedMagic)+opensslSaltSize+len(cipherText))
	out = append(out, opensslSaltedMagic...)
	out = append(out, salt...)
	out = append(out, cipherText...)
	return out, nil
}

// DecryptWithPassphrase reverses EncryptWithPassphrase.
func (a *aesProcessor) DecryptWithPassphrase(passphrase string, data []byte) ([]byte, error) {
	if len(data) < len(opensslSaltedMagic)+opensslSaltSize {
		return nil, errors.New("payload too short for a salted container")
	}
	if !bytes.HasPrefix(data, []byte(opensslSaltedMagic)) {
		return nil, errors.New("payload is not an OpenSSL salted container")
	}

	salt := data[len(opensslSaltedMagic) : len(opensslSaltedMagic)+opensslSaltSize]
	cipherText := data[len(opensslSaltedMagic)+opensslSaltSize:]

	key, iv := deriveKeyAndIV([]byte(passphrase), salt)
	return a.DecryptCBC(cipherText, key, iv)
}

// deriveKeyAndIV implements OpenSSL's EVP_BytesToKey with SHA-256 and a
// single iteration, the default of `openssl enc` since 1.1.0: digests of
// passphrase||salt are chained and concatenated until 48 bytes of material
// exist, split into a 32-byte key and a 16-byte IV.
func deriveKeyAndIV(passphrase, salt []byte) (key, iv []byte) {
	var material []byte
	var prev []byte
	for len(material) < 48 {
		h := sha256.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		material = append(material, prev...)
	}
	return material[:32], material[32:48]
}

func padPKCS7(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
