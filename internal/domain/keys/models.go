package keys

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"

	"github.com/awnumar/memguard"
)

// KeyPair is an RSA key pair held only in process memory. The private key
// PEM lives in a memguard enclave so it is encrypted at rest in memory and
// positively wiped on Destroy; it is never written to disk unless the owner
// explicitly exports it.
type KeyPair struct {
	privatePEM *memguard.Enclave
	PublicPEM  []byte
	Bits       int
}

// NewKeyPair seals the private key PEM into an enclave. The privatePEM slice
// passed in is wiped by memguard as part of sealing.
func NewKeyPair(privatePEM, publicPEM []byte, bits int) *KeyPair {
	return &KeyPair{
		privatePEM: memguard.NewEnclave(privatePEM),
		PublicPEM:  publicPEM,
		Bits:       bits,
	}
}

// OpenPrivate returns the private key PEM in a locked buffer. The caller must
// Destroy the buffer as soon as the operation using it completes.
func (k *KeyPair) OpenPrivate() (*memguard.LockedBuffer, error) {
	if k == nil || k.privatePEM == nil {
		return nil, errors.New("no private key held in this session")
	}
	return k.privatePEM.Open()
}

// HasPrivate reports whether the pair carries private key material.
func (k *KeyPair) HasPrivate() bool {
	return k != nil && k.privatePEM != nil
}

// RemotePublicKey is an imported counterparty public key, held for the
// session and overwritten by the next import.
type RemotePublicKey struct {
	PEM    []byte
	Bits   int
	SHA256 string
	SHA512 string
}

// NewRemotePublicKey computes the fingerprints of the imported PEM.
func NewRemotePublicKey(pemBytes []byte, bits int) *RemotePublicKey {
	s256 := sha256.Sum256(pemBytes)
	s512 := sha512.Sum512(pemBytes)
	return &RemotePublicKey{
		PEM:    pemBytes,
		Bits:   bits,
		SHA256: hex.EncodeToString(s256[:]),
		SHA512: hex.EncodeToString(s512[:]),
	}
}
