//go:build unit
// +build unit

package cryptography

import (
	"testing"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyProvider(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	rsaProcessor, err := NewRSAProcessor(logger)
	require.NoError(t, err)
	provider, err := NewKeyProvider(rsaProcessor, logger)
	require.NoError(t, err)

	t.Run("Generate", func(t *testing.T) {
		pair, err := provider.Generate(2048)
		require.NoError(t, err)
		assert.Equal(t, 2048, pair.Bits)
		assert.True(t, pair.HasPrivate())

		publicKey, err := rsaProcessor.ParsePublicKeyPEM(pair.PublicPEM)
		require.NoError(t, err)
		assert.Equal(t, 2048, publicKey.N.BitLen())

		buf, err := pair.OpenPrivate()
		require.NoError(t, err)
		defer buf.Destroy()
		privateKey, err := rsaProcessor.ParsePrivateKeyPEM(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, publicKey.N, privateKey.N)
	})

	t.Run("RejectsUnsupportedSizes", func(t *testing.T) {
		for _, bits := range []int{0, 512, 1024, 3072} {
			_, err := provider.Generate(bits)
			assert.Error(t, err, "bits=%d", bits)
		}
	})

	t.Run("RequiresProcessor", func(t *testing.T) {
		_, err := NewKeyProvider(nil, logger)
		assert.Error(t, err)
	})
}
