// Package app wires the envelope codec, key provider and audit trail into
// session-level workflows consumed by the CLI and the REST surface.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/audit"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/logger"
)

// Sentinel errors for operations attempted before the session holds the key
// material they need.
var (
	ErrNoKeyPair  = errors.New("no key pair generated in this session")
	ErrNoPeerKey  = errors.New("no counterparty public key imported")
	ErrNoPassword = errors.New("a passphrase is required for this envelope")
)

// Session owns the key material and workflows of one interactive user. It is
// not safe for concurrent use; multi-session callers create one Session per
// caller. Nothing in here is process-global.
type Session struct {
	codec     envelope.Codec
	provider  keys.Provider
	auditRepo audit.Repository // nil disables auditing
	logger    logger.Logger

	keyPair   *keys.KeyPair
	remoteKey *keys.RemotePublicKey
}

// NewSession creates a session over the given codec and key provider. The
// audit repository is optional.
func NewSession(codec envelope.Codec, provider keys.Provider, auditRepo audit.Repository, logger logger.Logger) (*Session, error) {
	if codec == nil || provider == nil {
		return nil, envelope.ErrCollaboratorUnavailable
	}
	return &Session{
		codec:     codec,
		provider:  provider,
		auditRepo: auditRepo,
		logger:    logger,
	}, nil
}

// GenerateKeyPair creates a fresh RSA key pair for this session, replacing
// any previous one. The private key exists only in sealed memory.
func (s *Session) GenerateKeyPair(bits int) error {
	pair, err := s.provider.Generate(bits)
	if err != nil {
		s.record(audit.OpGenerateKeys, "", 0, "", bits, false)
		return err
	}
	s.keyPair = pair
	s.record(audit.OpGenerateKeys, "", 0, fingerprint(pair.PublicPEM), bits, true)
	return nil
}

// KeyPair returns the session's own key pair, or nil.
func (s *Session) KeyPair() *keys.KeyPair {
	return s.keyPair
}

// RemoteKey returns the imported counterparty key, or nil.
func (s *Session) RemoteKey() *keys.RemotePublicKey {
	return s.remoteKey
}

// ExportPublicKey renders the session public key for transport, wrapped in an
// AES256-ENC envelope when a passphrase is given.
func (s *Session) ExportPublicKey(passphrase string) ([]byte, error) {
	if s.keyPair == nil {
		return nil, ErrNoKeyPair
	}
	out, err := s.codec.WrapPublicKey(s.keyPair.PublicPEM, passphrase)
	s.record(audit.OpExportKey, "", len(s.keyPair.PublicPEM), fingerprint(s.keyPair.PublicPEM), s.keyPair.Bits, err == nil)
	return out, err
}

// ImportRemoteKey imports a counterparty public key from plain PEM or from
// an AES256-ENC / RSA-ENC wrapping, replacing any previously imported key.
func (s *Session) ImportRemoteKey(text []byte, passphrase string) (*keys.RemotePublicKey, error) {
	var imported *keys.RemotePublicKey
	err := s.withPrivatePEMOptional(func(privPEM []byte) error {
		var err error
		imported, err = s.codec.ImportPublicKey(text, passphrase, privPEM)
		return err
	})
	if err != nil {
		s.record(audit.OpImportKey, "", len(text), "", 0, false)
		return nil, err
	}
	s.remoteKey = imported
	s.record(audit.OpImportKey, "", len(text), imported.SHA256, imported.Bits, true)
	return imported, nil
}

// MessageLimit reports the largest message EncryptMessage can carry to the
// imported key, and whether the underlying key size was actually detected
// rather than assumed.
func (s *Session) MessageLimit() (int, bool, error) {
	if s.remoteKey == nil {
		return 0, false, ErrNoPeerKey
	}
	bits, detected := s.codec.DetectKeySize(s.remoteKey.PEM)
	return envelope.MaxPlainBytes(bits), detected, nil
}

// EncryptMessage encrypts a short message to the imported counterparty key
// with the direct RSA path. Oversized messages yield a PayloadSizeError so
// the caller can fall back to file (hybrid) encryption.
func (s *Session) EncryptMessage(plaintext []byte) ([]byte, error) {
	if s.remoteKey == nil {
		return nil, ErrNoPeerKey
	}
	env, err := s.codec.WrapDirectRSA(s.remoteKey.PEM, plaintext)
	s.record(audit.OpWrapDirect, string(envelope.FormatRSA), len(plaintext), s.remoteKey.SHA256, s.remoteKey.Bits, err == nil)
	if err != nil {
		return nil, err
	}
	return env.Encode(), nil
}

// EncryptWithPassphrase encrypts a payload of any size under a passphrase.
func (s *Session) EncryptWithPassphrase(passphrase string, plaintext []byte) ([]byte, error) {
	env, err := s.codec.WrapPasswordAES(passphrase, plaintext)
	s.record(audit.OpWrapPassword, string(envelope.FormatAES256), len(plaintext), "", 0, err == nil)
	if err != nil {
		return nil, err
	}
	return env.Encode(), nil
}

// Decrypt dispatches a textual envelope on its format tag: AES256-ENC uses
// the passphrase, RSA-ENC and HYBRID-RSA-AES use the session private key.
// The format of the envelope is returned alongside the plaintext.
func (s *Session) Decrypt(raw []byte, passphrase string) ([]byte, envelope.Format, error) {
	format, ok := envelope.DetectFormat(raw)
	if !ok {
		return nil, "", envelope.ErrMalformedEnvelope
	}

	switch format {
	case envelope.FormatAES256:
		if passphrase == "" {
			return nil, format, ErrNoPassword
		}
		plain, err := s.codec.UnwrapPasswordAES(passphrase, raw)
		s.record(audit.OpUnwrapPass, string(format), len(raw), "", 0, err == nil)
		return plain, format, err

	case envelope.FormatRSA:
		plain, err := s.decryptWithPrivate(format, raw)
		return plain, format, err

	case envelope.FormatHybrid:
		plain, err := s.decryptWithPrivate(format, raw)
		return plain, format, err

	default:
		return nil, "", envelope.ErrMalformedEnvelope
	}
}

// EncryptFile hybrid-encrypts the file at path to the imported key, writing
// path + ".enc".
func (s *Session) EncryptFile(path string) (string, error) {
	if s.remoteKey == nil {
		return "", ErrNoPeerKey
	}
	outPath, err := s.codec.EncryptFile(s.remoteKey.PEM, path)
	s.record(audit.OpWrapHybrid, string(envelope.FormatHybrid), 0, s.remoteKey.SHA256, s.remoteKey.Bits, err == nil)
	return outPath, err
}

// DecryptFile decrypts a hybrid envelope file with the session private key.
func (s *Session) DecryptFile(path, outPath string) (string, error) {
	if s.keyPair == nil || !s.keyPair.HasPrivate() {
		return "", ErrNoKeyPair
	}
	var result string
	err := s.withPrivatePEM(func(privPEM []byte) error {
		var err error
		result, err = s.codec.DecryptFile(privPEM, path, outPath)
		return err
	})
	s.record(audit.OpUnwrapHybrid, string(envelope.FormatHybrid), 0, fingerprint(s.keyPair.PublicPEM), s.keyPair.Bits, err == nil)
	return result, err
}

// ExportPublicKeyFile writes the session public key PEM to path. Only this
// explicit call ever persists the public key.
func (s *Session) ExportPublicKeyFile(path string) error {
	if s.keyPair == nil {
		return ErrNoKeyPair
	}
	err := writeFile(path, s.keyPair.PublicPEM)
	s.record(audit.OpExportKey, "", len(s.keyPair.PublicPEM), fingerprint(s.keyPair.PublicPEM), s.keyPair.Bits, err == nil)
	return err
}

// ExportPrivateKeyFile writes the session private key PEM to path. Only this
// explicit call ever persists private key material.
func (s *Session) ExportPrivateKeyFile(path string) error {
	if s.keyPair == nil || !s.keyPair.HasPrivate() {
		return ErrNoKeyPair
	}
	err := s.withPrivatePEM(func(privPEM []byte) error {
		// The enclave buffer is wiped on Destroy; the written copy is the
		// user's explicit responsibility from here on.
		pemCopy := make([]byte, len(privPEM))
		copy(pemCopy, privPEM)
		return writeFile(path, pemCopy)
	})
	s.record(audit.OpExportPrivate, "", 0, fingerprint(s.keyPair.PublicPEM), s.keyPair.Bits, err == nil)
	return err
}

// AuditTrail returns the most recent audit records, newest first.
func (s *Session) AuditTrail(ctx context.Context, limit int) ([]*audit.Record, error) {
	if s.auditRepo == nil {
		return nil, nil
	}
	return s.auditRepo.List(ctx, limit)
}

// Close drops the session key material references.
func (s *Session) Close() {
	s.keyPair = nil
	s.remoteKey = nil
}

func (s *Session) decryptWithPrivate(format envelope.Format, raw []byte) ([]byte, error) {
	if s.keyPair == nil || !s.keyPair.HasPrivate() {
		return nil, ErrNoKeyPair
	}
	var plain []byte
	err := s.withPrivatePEM(func(privPEM []byte) error {
		var err error
		if format == envelope.FormatHybrid {
			plain, err = s.codec.UnwrapHybrid(privPEM, raw)
		} else {
			plain, err = s.codec.UnwrapDirectRSA(privPEM, raw)
		}
		return err
	})
	op := audit.OpUnwrapDirect
	if format == envelope.FormatHybrid {
		op = audit.OpUnwrapHybrid
	}
	s.record(op, string(format), len(raw), fingerprint(s.keyPair.PublicPEM), s.keyPair.Bits, err == nil)
	if err != nil {
		return nil, err
	}
	return plain, nil
}

// withPrivatePEM opens the sealed private key for the duration of fn and
// guarantees the unsealed buffer is wiped afterwards, on every exit path.
func (s *Session) withPrivatePEM(fn func(pem []byte) error) error {
	buf, err := s.keyPair.OpenPrivate()
	if err != nil {
		return err
	}
	defer buf.Destroy()
	return fn(buf.Bytes())
}

// withPrivatePEMOptional runs fn with the private PEM when one is held, or
// with nil when the session has no key pair yet.
func (s *Session) withPrivatePEMOptional(fn func(pem []byte) error) error {
	if s.keyPair == nil || !s.keyPair.HasPrivate() {
		return fn(nil)
	}
	return s.withPrivatePEM(fn)
}

func (s *Session) record(operation, format string, size int, keyFingerprint string, keyBits int, succeeded bool) {
	if s.auditRepo == nil {
		return
	}
	rec := &audit.Record{
		ID:              uuid.New().String(),
		Operation:       operation,
		Format:          format,
		PayloadSize:     size,
		KeyFingerprint:  keyFingerprint,
		KeyBits:         keyBits,
		Succeeded:       succeeded,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := s.auditRepo.Create(context.Background(), rec); err != nil {
		s.logger.Warn("failed to persist audit record: ", err)
	}
}

func fingerprint(pemBytes []byte) string {
	sum := sha256.Sum256(pemBytes)
	return hex.EncodeToString(sum[:])
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(filepath.Clean(path), data, 0600); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
