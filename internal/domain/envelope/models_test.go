//go:build unit
// +build unit

package envelope

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxPlainBytes(t *testing.T) {
	tests := []struct {
		bits     int
		expected int
	}{
		{2048, 190},
		{4096, 446},
		{8192, 958},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MaxPlainBytes(tt.bits), "bits=%d", tt.bits)
	}
}

func TestEnvelope_EncodeParseRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		envelope Envelope
	}{
		{"AES256", Envelope{Format: FormatAES256, Blocks: [][]byte{[]byte("salted payload")}}},
		{"RSA", Envelope{Format: FormatRSA, Blocks: [][]byte{[]byte("rsa block")}}},
		{"Hybrid", Envelope{Format: FormatHybrid, Blocks: [][]byte{[]byte("wrapped key"), []byte("bulk data")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.envelope.Encode()

			lines := strings.Split(string(encoded), "\n")
			assert.Equal(t, string(tt.envelope.Format), lines[0])
			assert.Len(t, lines, len(tt.envelope.Blocks)+1)

			parsed, err := Parse(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.envelope.Format, parsed.Format)
			assert.Equal(t, tt.envelope.Blocks, parsed.Blocks)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	block := base64.StdEncoding.EncodeToString([]byte("block"))

	tests := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"WhitespaceOnly", "  \n \t "},
		{"UnknownTag", "AES512-ENC\n" + block},
		{"LowercaseTag", "rsa-enc\n" + block},
		{"MissingBlock", "RSA-ENC"},
		{"ExtraBlock", "RSA-ENC\n" + block + "\n" + block},
		{"HybridSingleBlock", "HYBRID-RSA-AES\n" + block},
		{"InvalidBase64", "RSA-ENC\nnot*base64*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestParse_ToleratesSurroundingWhitespace(t *testing.T) {
	block := base64.StdEncoding.EncodeToString([]byte("payload"))
	raw := "\n  RSA-ENC  \n  " + block + "  \n\n"

	parsed, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, FormatRSA, parsed.Format)
	assert.Equal(t, []byte("payload"), parsed.Blocks[0])
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Format
		ok       bool
	}{
		{"AES256", "AES256-ENC\nabc=", FormatAES256, true},
		{"RSA", "RSA-ENC\nabc=", FormatRSA, true},
		{"Hybrid", "HYBRID-RSA-AES\nabc=\ndef=", FormatHybrid, true},
		{"TagOnly", "RSA-ENC", FormatRSA, true},
		{"LeadingWhitespace", "\n  HYBRID-RSA-AES\nabc=", FormatHybrid, true},
		{"Unknown", "PGP-MESSAGE\nabc=", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := DetectFormat([]byte(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, format)
			}
		})
	}
}
