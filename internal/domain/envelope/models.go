package envelope

import (
	"bytes"
	"encoding/base64"
)

// Format identifies which wire format produced an envelope. It is always the
// first line of the textual representation and unambiguously selects the
// decode path.
type Format string

// Wire format tags. These are load-bearing for interoperability with
// previously produced artifacts and must not change.
const (
	// FormatAES256 wraps a passphrase-encrypted payload (salted AES-256-CBC).
	FormatAES256 Format = "AES256-ENC"
	// FormatRSA wraps a short payload encrypted directly with RSA-OAEP-SHA256.
	FormatRSA Format = "RSA-ENC"
	// FormatHybrid wraps bulk data: an RSA-wrapped key||IV block followed by
	// the AES-256-CBC ciphertext of the data.
	FormatHybrid Format = "HYBRID-RSA-AES"
)

const (
	// SymmetricKeySize is the AES-256 key length used by the hybrid path.
	SymmetricKeySize = 32
	// IVSize is the AES-CBC initialization vector length.
	IVSize = 16
	// KeyMaterialSize is the exact length of the unwrapped key||IV blob in a
	// hybrid envelope. Any other length is a corruption signal.
	KeyMaterialSize = SymmetricKeySize + IVSize

	// oaepHashSize is the SHA-256 digest length used by the OAEP padding.
	oaepHashSize = 32

	// DefaultKeyBits is the documented fallback when the modulus bit length
	// of an imported public key cannot be detected. It is an approximation,
	// not a guarantee: a smaller real key causes encryption to fail late, a
	// larger one causes needless rejection.
	DefaultKeyBits = 2048

	// EncryptedFileSuffix is appended to a file path by hybrid encryption.
	EncryptedFileSuffix = ".enc"
	// DecryptedFileSuffix replaces EncryptedFileSuffix when no explicit
	// output path is given to file decryption.
	DecryptedFileSuffix = ".dec"
)

// MaxPlainBytes returns the largest plaintext a single RSA-OAEP-SHA256
// operation can carry under a key of the given modulus bit length:
// k - 2h - 2, with k the key size in bytes and h the SHA-256 digest length.
// For 2048-bit keys this is 190 bytes.
func MaxPlainBytes(bits int) int {
	return bits/8 - 2*oaepHashSize - 2
}

// Envelope is a parsed self-describing encrypted payload. Blocks holds the
// decoded base64 sections in wire order: one ciphertext block for the AES256
// and RSA formats, wrapped key material followed by ciphertext for the
// hybrid format.
type Envelope struct {
	Format Format
	Blocks [][]byte
}

// blockCount returns the number of payload sections the format requires.
func (f Format) blockCount() int {
	if f == FormatHybrid {
		return 2
	}
	return 1
}

func (f Format) known() bool {
	switch f {
	case FormatAES256, FormatRSA, FormatHybrid:
		return true
	}
	return false
}

// Encode renders the envelope in its textual wire form: the format tag
// followed by one base64 line per block, newline-joined.
func (e *Envelope) Encode() []byte {
	lines := make([][]byte, 0, len(e.Blocks)+1)
	lines = append(lines, []byte(e.Format))
	for _, block := range e.Blocks {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(block)))
		base64.StdEncoding.Encode(encoded, block)
		lines = append(lines, encoded)
	}
	return bytes.Join(lines, []byte("\n"))
}

// Parse decodes the textual wire form of an envelope. The first line fully
// determines the format; an unknown tag, a wrong section count or an invalid
// base64 block yields ErrMalformedEnvelope rather than a silent
// misinterpretation.
func Parse(raw []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrMalformedEnvelope
	}

	lines := bytes.Split(trimmed, []byte("\n"))
	for i := range lines {
		lines[i] = bytes.TrimSpace(lines[i])
	}

	format := Format(lines[0])
	if !format.known() {
		return nil, ErrMalformedEnvelope
	}
	if len(lines)-1 != format.blockCount() {
		return nil, ErrMalformedEnvelope
	}

	blocks := make([][]byte, 0, format.blockCount())
	for _, line := range lines[1:] {
		block, err := base64.StdEncoding.DecodeString(string(line))
		if err != nil {
			return nil, ErrMalformedEnvelope
		}
		blocks = append(blocks, block)
	}

	return &Envelope{Format: format, Blocks: blocks}, nil
}

// DetectFormat reports the format tag of a textual envelope without fully
// decoding it, or false if the buffer does not start with a known tag.
func DetectFormat(raw []byte) (Format, bool) {
	trimmed := bytes.TrimSpace(raw)
	line := trimmed
	if idx := bytes.IndexByte(trimmed, '\n'); idx >= 0 {
		line = bytes.TrimSpace(trimmed[:idx])
	}
	format := Format(line)
	return format, format.known()
}
