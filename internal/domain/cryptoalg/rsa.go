package cryptoalg

import "crypto/rsa"

// RSAProcessor handles RSA asymmetric cryptographic operations.
// Encryption uses RSA-OAEP with SHA-256 for both the hash and the MGF; a
// single operation carries at most keyBytes - 2*32 - 2 bytes of plaintext,
// which is why bulk data goes through the hybrid path instead.
type RSAProcessor interface {
	// GenerateKeys generates an RSA key pair with the specified bit size.
	// Supported sizes: 2048, 4096, 8192 bits.
	GenerateKeys(keySize int) (*rsa.PrivateKey, *rsa.PublicKey, error)

	// Encrypt encrypts a short plaintext using RSA-OAEP-SHA256 with the
	// public key. The plaintext must fit in a single OAEP block.
	Encrypt(plainText []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// Decrypt decrypts RSA-OAEP-SHA256 ciphertext using the private key.
	Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// EncodePrivateKeyPEM renders the private key as a PEM block (PKCS#1).
	EncodePrivateKeyPEM(privateKey *rsa.PrivateKey) []byte

	// EncodePublicKeyPEM renders the public key as a PEM block (PKIX).
	EncodePublicKeyPEM(publicKey *rsa.PublicKey) ([]byte, error)

	// ParsePrivateKeyPEM parses a PEM private key (PKCS#1, PKCS#8 fallback).
	ParsePrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error)

	// ParsePublicKeyPEM parses a PEM public key (PKIX, PKCS#1 fallback).
	ParsePublicKeyPEM(pemBytes []byte) (*rsa.PublicKey, error)

	// SavePrivateKeyToFile saves the RSA private key to a PEM-encoded file.
	SavePrivateKeyToFile(privateKey *rsa.PrivateKey, filename string) error

	// SavePublicKeyToFile saves the RSA public key to a PEM-encoded file.
	SavePublicKeyToFile(publicKey *rsa.PublicKey, filename string) error

	// ReadPrivateKey reads an RSA private key from a PEM-encoded file.
	ReadPrivateKey(privateKeyPath string) (*rsa.PrivateKey, error)

	// ReadPublicKey reads an RSA public key from a PEM-encoded file.
	ReadPublicKey(publicKeyPath string) (*rsa.PublicKey, error)
}
