package envelope

import (
	"errors"
	"fmt"
)

// Decrypt failures are deliberately opaque: the same error is returned for a
// wrong key, a wrong passphrase, tampered ciphertext and padding failures so
// that callers cannot be used as a padding oracle.
var (
	// ErrPayloadTooLarge indicates a direct-RSA plaintext exceeds the OAEP
	// bound for the target key. Recoverable: callers should fall back to the
	// hybrid path.
	ErrPayloadTooLarge = errors.New("plaintext exceeds the RSA-OAEP size limit")

	// ErrMalformedEnvelope indicates a missing or unknown format tag, a wrong
	// section count or an undecodable base64 block.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrCorruptKeyMaterial indicates the unwrapped symmetric key material of
	// a hybrid envelope did not have the expected 48-byte length.
	ErrCorruptKeyMaterial = errors.New("corrupt symmetric key material")

	// ErrAsymmetricDecryptFailed indicates an RSA-OAEP decryption failure.
	ErrAsymmetricDecryptFailed = errors.New("asymmetric decryption failed")

	// ErrSymmetricDecryptFailed indicates an AES decryption failure.
	ErrSymmetricDecryptFailed = errors.New("symmetric decryption failed")

	// ErrCollaboratorUnavailable indicates a required cryptographic
	// capability is missing. Fatal for the requested operation only.
	ErrCollaboratorUnavailable = errors.New("cryptographic capability unavailable")
)

// PayloadSizeError reports a direct-RSA size violation together with the
// exact byte limit, so the caller can tell the user how much to trim or
// switch to the hybrid path.
type PayloadSizeError struct {
	Size    int
	Limit   int
	KeyBits int
}

func (e *PayloadSizeError) Error() string {
	return fmt.Sprintf("plaintext is %d bytes, above the %d-byte RSA-%d limit", e.Size, e.Limit, e.KeyBits)
}

// Unwrap makes the error match ErrPayloadTooLarge under errors.Is.
func (e *PayloadSizeError) Unwrap() error {
	return ErrPayloadTooLarge
}
