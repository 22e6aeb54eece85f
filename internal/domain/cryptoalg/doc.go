// Package cryptoalg defines the contracts of the cryptographic processors
// the envelope codec is built on.
package cryptoalg
