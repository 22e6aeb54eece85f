// Package keys holds the in-memory key material owned by a session: the
// local RSA key pair and the imported counterparty public key.
package keys
