package envelope

import "github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"

// Codec translates between plaintext/keys and the three self-describing wire
// formats, enforcing the size and corruption invariants. Implementations
// orchestrate the RSA and AES processors; they never persist key material as
// a side effect of encryption or decryption.
type Codec interface {
	// WrapDirectRSA encrypts a short plaintext directly with RSA-OAEP-SHA256
	// under the given public key PEM. Plaintexts above MaxPlainBytes for the
	// key yield a *PayloadSizeError (errors.Is ErrPayloadTooLarge).
	WrapDirectRSA(publicKeyPEM, plaintext []byte) (*Envelope, error)

	// UnwrapDirectRSA decodes an RSA-ENC envelope and decrypts it with the
	// private key PEM. All decryption failures surface as the opaque
	// ErrAsymmetricDecryptFailed.
	UnwrapDirectRSA(privateKeyPEM, raw []byte) ([]byte, error)

	// WrapPasswordAES encrypts a payload of any size with salted
	// AES-256-CBC keyed from the passphrase.
	WrapPasswordAES(passphrase string, plaintext []byte) (*Envelope, error)

	// UnwrapPasswordAES decodes an AES256-ENC envelope and decrypts it with
	// the passphrase. Wrong passphrases and corrupted ciphertext surface as
	// the opaque ErrSymmetricDecryptFailed.
	UnwrapPasswordAES(passphrase string, raw []byte) ([]byte, error)

	// WrapHybrid encrypts bulk data under a fresh random 32-byte AES key and
	// 16-byte IV, wrapping key||IV with RSA-OAEP-SHA256 under the public key
	// PEM. Key and IV are fresh on every call.
	WrapHybrid(publicKeyPEM, data []byte) (*Envelope, error)

	// UnwrapHybrid decodes a HYBRID-RSA-AES envelope, unwraps the key
	// material with the private key PEM and decrypts the data. Key material
	// of any length other than 48 bytes yields ErrCorruptKeyMaterial.
	UnwrapHybrid(privateKeyPEM, raw []byte) ([]byte, error)

	// EncryptFile hybrid-encrypts the file at path and writes the envelope to
	// path + ".enc", returning the output path.
	EncryptFile(publicKeyPEM []byte, path string) (string, error)

	// DecryptFile decrypts a hybrid envelope file. When outPath is empty the
	// output path is derived from path with ".enc" replaced by ".dec".
	DecryptFile(privateKeyPEM []byte, path, outPath string) (string, error)

	// DetectKeySize reports the modulus bit length of a public key PEM. When
	// detection fails it returns DefaultKeyBits; the boolean reports whether
	// the value was actually detected.
	DetectKeySize(publicKeyPEM []byte) (int, bool)

	// WrapPublicKey prepares a public key PEM for transport: as-is when the
	// passphrase is empty, otherwise wrapped in an AES256-ENC envelope.
	WrapPublicKey(publicKeyPEM []byte, passphrase string) ([]byte, error)

	// ImportPublicKey recognizes a plain PEM public key, an AES256-ENC
	// wrapping (unwrapped with the passphrase) or an RSA-ENC wrapping
	// (unwrapped with the local private key PEM), and returns the imported
	// key with its detected bit length and fingerprints.
	ImportPublicKey(text []byte, passphrase string, privateKeyPEM []byte) (*keys.RemotePublicKey, error)
}
