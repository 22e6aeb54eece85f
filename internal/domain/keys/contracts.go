package keys

// Provider produces RSA key pairs at a caller-selected strength.
type Provider interface {
	// Generate creates a key pair with the given modulus bit length
	// (2048, 4096 or 8192) and seals the private PEM in memory.
	Generate(bits int) (*KeyPair, error)
}
