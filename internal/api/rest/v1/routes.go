package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/envelope"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/domain/keys"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, codec envelope.Codec, provider keys.Provider) {
	group := r.Group(BasePath)

	envelopeHandler := NewEnvelopeHandler(codec, provider)
	group.POST("/keys", envelopeHandler.GenerateKeyPair)
	group.POST("/keys/inspect", envelopeHandler.InspectKey)
	group.POST("/envelopes/encrypt", envelopeHandler.Encrypt)
	group.POST("/envelopes/decrypt", envelopeHandler.Decrypt)
}
