package cryptoalg

// AESProcessor handles AES-256-CBC symmetric encryption, both with explicit
// raw key material and with a passphrase-derived key in the OpenSSL salted
// container format (so passphrase artifacts interoperate with
// `openssl enc -aes-256-cbc -salt -pass pass:...`).
type AESProcessor interface {
	// GenerateKey generates a random AES key of the specified size.
	// Supported key sizes: 16 (AES-128), 24 (AES-192), 32 (AES-256) bytes.
	GenerateKey(keySize int) ([]byte, error)

	// EncryptCBC encrypts data with AES-CBC under the given raw key and IV,
	// applying PKCS#7 padding.
	EncryptCBC(data, key, iv []byte) ([]byte, error)

	// DecryptCBC decrypts AES-CBC ciphertext with the given raw key and IV
	// and strips the PKCS#7 padding.
	DecryptCBC(ciphertext, key, iv []byte) ([]byte, error)

	// EncryptWithPassphrase encrypts data with AES-256-CBC under a key and IV
	// derived from the passphrase and a fresh 8-byte salt. The result is the
	// OpenSSL container: "Salted__" || salt || ciphertext.
	EncryptWithPassphrase(passphrase string, data []byte) ([]byte, error)

	// DecryptWithPassphrase reverses EncryptWithPassphrase. A wrong
	// passphrase manifests as a padding or format failure.
	DecryptWithPassphrase(passphrase string, data []byte) ([]byte, error)
}
