// Package v1 exposes the envelope codec as a stateless REST surface. Key
// material travels inside each request; nothing is retained between calls.
package v1

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
)

// EnvelopeHandler defines the interface for handling envelope operations
type EnvelopeHandler interface {
	GenerateKeyPair(ctx *gin.Context)
	InspectKey(ctx *gin.Context)
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

type envelopeHandler struct {
	codec    envelope.Codec
	provider keys.Provider
}

// NewEnvelopeHandler creates a new EnvelopeHandler
func NewEnvelopeHandler(codec envelope.Codec, provider keys.Provider) EnvelopeHandler {
	return &envelopeHandler{
		codec:    codec,
		provider: provider,
	}
}

// GenerateKeyPair handles the POST request to generate an RSA key pair. Both
// halves are returned to the caller; the server keeps nothing.
func (handler *envelopeHandler) GenerateKeyPair(ctx *gin.Context) {
	var request GenerateKeyPairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid key pair request: %v", err.Error())})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	bits := request.KeySize
	if bits == 0 {
		bits = envelope.DefaultKeyBits
	}

	pair, err := handler.provider.Generate(bits)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("key generation failed: %v", err.Error())})
		return
	}

	privBuf, err := pair.OpenPrivate()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: "key generation failed"})
		return
	}
	defer privBuf.Destroy()

	ctx.JSON(http.StatusCreated, KeyPairResponse{
		PublicKeyPEM:    string(pair.PublicPEM),
		PrivateKeyPEM:   string(privBuf.Bytes()),
		KeyBits:         pair.Bits,
		MaxMessageBytes: envelope.MaxPlainBytes(pair.Bits),
	})
}

// InspectKey handles the POST request to report the properties of a public
// key: detected modulus size, direct-path message limit and fingerprints.
func (handler *envelopeHandler) InspectKey(ctx *gin.Context) {
	var request InspectKeyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid inspect request: %v", err.Error())})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	pemBytes := []byte(request.PublicKeyPEM)
	bits, detected := handler.codec.DetectKeySize(pemBytes)
	info := keys.NewRemotePublicKey(pemBytes, bits)

	ctx.JSON(http.StatusOK, KeyInfoResponse{
		KeyBits:         bits,
		SizeDetected:    detected,
		MaxMessageBytes: envelope.MaxPlainBytes(bits),
		SHA256:          info.SHA256,
		SHA512:          info.SHA512,
	})
}

// Encrypt handles the POST request to seal a plaintext into an envelope of
// the requested format.
func (handler *envelopeHandler) Encrypt(ctx *gin.Context) {
	var request EncryptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid encrypt request: %v", err.Error())})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	plaintext, err := base64.StdEncoding.DecodeString(request.Plaintext)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "plaintext must be base64 encoded"})
		return
	}

	var env *envelope.Envelope
	switch envelope.Format(request.Format) {
	case envelope.FormatAES256:
		env, err = handler.codec.WrapPasswordAES(request.Passphrase, plaintext)
	case envelope.FormatRSA:
		env, err = handler.codec.WrapDirectRSA([]byte(request.PublicKeyPEM), plaintext)
	case envelope.FormatHybrid:
		env, err = handler.codec.WrapHybrid([]byte(request.PublicKeyPEM), plaintext)
	}
	if err != nil {
		writeCodecError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, EnvelopeResponse{
		Envelope: string(env.Encode()),
		Format:   string(env.Format),
	})
}

// Decrypt handles the POST request to open an envelope. The format tag in
// the envelope selects the path.
func (handler *envelopeHandler) Decrypt(ctx *gin.Context) {
	var request DecryptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid decrypt request: %v", err.Error())})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	raw := []byte(request.Envelope)
	format, ok := envelope.DetectFormat(raw)
	if !ok {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "unrecognized envelope format"})
		return
	}

	var plain []byte
	var err error
	switch format {
	case envelope.FormatAES256:
		if request.Passphrase == "" {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "a passphrase is required for AES256-ENC envelopes"})
			return
		}
		plain, err = handler.codec.UnwrapPasswordAES(request.Passphrase, raw)
	case envelope.FormatRSA, envelope.FormatHybrid:
		if request.PrivateKeyPEM == "" {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("a private key is required for %s envelopes", format)})
			return
		}
		if format == envelope.FormatHybrid {
			plain, err = handler.codec.UnwrapHybrid([]byte(request.PrivateKeyPEM), raw)
		} else {
			plain, err = handler.codec.UnwrapDirectRSA([]byte(request.PrivateKeyPEM), raw)
		}
	}
	if err != nil {
		writeCodecError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, PlaintextResponse{
		Plaintext: base64.StdEncoding.EncodeToString(plain),
		Format:    string(format),
	})
}

// writeCodecError maps codec errors onto HTTP responses. Decryption failures
// stay deliberately vague so the API does not act as a padding oracle.
func writeCodecError(ctx *gin.Context, err error) {
	var sizeErr *envelope.PayloadSizeError
	switch {
	case errors.As(err, &sizeErr):
		ctx.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Message: fmt.Sprintf("payload of %d bytes exceeds the %d byte limit of a %d-bit key", sizeErr.Size, sizeErr.Limit, sizeErr.KeyBits),
		})
	case errors.Is(err, envelope.ErrMalformedEnvelope):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "malformed envelope"})
	case errors.Is(err, envelope.ErrAsymmetricDecryptFailed),
		errors.Is(err, envelope.ErrSymmetricDecryptFailed),
		errors.Is(err, envelope.ErrCorruptKeyMaterial):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "decryption failed"})
	default:
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}
}
