//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/codec"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/cryptography"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := testutil.SetupTestLogger(t)

	rsaProcessor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err)
	aesProcessor, err := cryptography.NewAESProcessor(logger)
	require.NoError(t, err)
	envelopeCodec, err := codec.NewEnvelopeCodec(rsaProcessor, aesProcessor, logger)
	require.NoError(t, err)
	provider, err := cryptography.NewKeyProvider(rsaProcessor, logger)
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, envelopeCodec, provider)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, err := http.NewRequest("POST", BasePath+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	return w
}

func generateKeyPair(t *testing.T, router *gin.Engine) KeyPairResponse {
	t.Helper()
	w := doJSON(t, router, "/keys", GenerateKeyPairRequest{KeySize: 2048})
	require.Equal(t, http.StatusCreated, w.Code)

	var response KeyPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestEnvelopeHandler_GenerateKeyPair(t *testing.T) {
	router := setupRouter(t)

	response := generateKeyPair(t, router)
	assert.Contains(t, response.PublicKeyPEM, "BEGIN PUBLIC KEY")
	assert.Contains(t, response.PrivateKeyPEM, "PRIVATE KEY")
	assert.Equal(t, 2048, response.KeyBits)
	assert.Equal(t, 190, response.MaxMessageBytes)
}

func TestEnvelopeHandler_GenerateKeyPair_RejectsOddSize(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, "/keys", GenerateKeyPairRequest{KeySize: 1234})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnvelopeHandler_InspectKey(t *testing.T) {
	router := setupRouter(t)
	pair := generateKeyPair(t, router)

	w := doJSON(t, router, "/keys/inspect", InspectKeyRequest{PublicKeyPEM: pair.PublicKeyPEM})
	require.Equal(t, http.StatusOK, w.Code)

	var response KeyInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2048, response.KeyBits)
	assert.True(t, response.SizeDetected)
	assert.Equal(t, 190, response.MaxMessageBytes)
	assert.Len(t, response.SHA256, 64)
	assert.Len(t, response.SHA512, 128)
}

func TestEnvelopeHandler_EncryptDecryptRoundTrips(t *testing.T) {
	router := setupRouter(t)
	pair := generateKeyPair(t, router)
	plaintext := base64.StdEncoding.EncodeToString([]byte("round trip payload"))

	tests := []struct {
		name    string
		request EncryptRequest
		decrypt DecryptRequest
	}{
		{
			name:    "DirectRSA",
			request: EncryptRequest{Format: "RSA-ENC", PublicKeyPEM: pair.PublicKeyPEM, Plaintext: plaintext},
			decrypt: DecryptRequest{PrivateKeyPEM: pair.PrivateKeyPEM},
		},
		{
			name:    "Hybrid",
			request: EncryptRequest{Format: "HYBRID-RSA-AES", PublicKeyPEM: pair.PublicKeyPEM, Plaintext: plaintext},
			decrypt: DecryptRequest{PrivateKeyPEM: pair.PrivateKeyPEM},
		},
		{
			name:    "PassphraseAES",
			request: EncryptRequest{Format: "AES256-ENC", Passphrase: "hunter2", Plaintext: plaintext},
			decrypt: DecryptRequest{Passphrase: "hunter2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "/envelopes/encrypt", tt.request)
			require.Equal(t, http.StatusOK, w.Code)

			var encResponse EnvelopeResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encResponse))
			assert.Equal(t, tt.request.Format, encResponse.Format)
			assert.True(t, strings.HasPrefix(encResponse.Envelope, tt.request.Format))

			tt.decrypt.Envelope = encResponse.Envelope
			w = doJSON(t, router, "/envelopes/decrypt", tt.decrypt)
			require.Equal(t, http.StatusOK, w.Code)

			var decResponse PlaintextResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decResponse))
			assert.Equal(t, plaintext, decResponse.Plaintext)
			assert.Equal(t, tt.request.Format, decResponse.Format)
		})
	}
}

func TestEnvelopeHandler_Encrypt_PayloadTooLarge(t *testing.T) {
	router := setupRouter(t)
	pair := generateKeyPair(t, router)

	oversized := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("a"), 191))
	w := doJSON(t, router, "/envelopes/encrypt", EncryptRequest{
		Format:       "RSA-ENC",
		PublicKeyPEM: pair.PublicKeyPEM,
		Plaintext:    oversized,
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "190")
}

func TestEnvelopeHandler_Encrypt_Validation(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name    string
		request EncryptRequest
	}{
		{"UnknownFormat", EncryptRequest{Format: "PGP", Plaintext: "YWJj"}},
		{"MissingPassphrase", EncryptRequest{Format: "AES256-ENC", Plaintext: "YWJj"}},
		{"MissingPublicKey", EncryptRequest{Format: "RSA-ENC", Plaintext: "YWJj"}},
		{"PlaintextNotBase64", EncryptRequest{Format: "AES256-ENC", Passphrase: "pw", Plaintext: "not base64!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "/envelopes/encrypt", tt.request)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEnvelopeHandler_Decrypt_Failures(t *testing.T) {
	router := setupRouter(t)
	pair := generateKeyPair(t, router)
	plaintext := base64.StdEncoding.EncodeToString([]byte("data"))

	w := doJSON(t, router, "/envelopes/encrypt", EncryptRequest{
		Format: "AES256-ENC", Passphrase: "correct", Plaintext: plaintext,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var encResponse EnvelopeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &encResponse))

	t.Run("WrongPassphraseStaysOpaque", func(t *testing.T) {
		w := doJSON(t, router, "/envelopes/decrypt", DecryptRequest{
			Envelope: encResponse.Envelope, Passphrase: "wrong",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "decryption failed")
		assert.NotContains(t, w.Body.String(), "padding")
	})

	t.Run("MissingPassphrase", func(t *testing.T) {
		w := doJSON(t, router, "/envelopes/decrypt", DecryptRequest{Envelope: encResponse.Envelope})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownEnvelope", func(t *testing.T) {
		w := doJSON(t, router, "/envelopes/decrypt", DecryptRequest{
			Envelope: "PGP-MESSAGE\nabc=", PrivateKeyPEM: pair.PrivateKeyPEM,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
