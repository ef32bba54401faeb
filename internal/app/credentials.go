package app

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialScheme abstracts how account passwords are stored and verified,
// so the storage format can change without touching the services that log
// users in.
type CredentialScheme interface {
	// Hash converts a plaintext password into its stored form.
	Hash(password string) (string, error)
	// Verify reports whether presented matches the stored credential.
	Verify(stored, presented string) bool
}

// PlaintextScheme stores passwords verbatim and compares them in constant
// time. This preserves the historical behavior of the system; it is a known
// weakness, kept deliberately rather than silently fixed.
type PlaintextScheme struct{}

// Hash returns the password unchanged.
func (PlaintextScheme) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares the two strings in constant time.
func (PlaintextScheme) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptScheme stores bcrypt hashes. Substitutable for PlaintextScheme via
// configuration.
type BcryptScheme struct{}

// Hash produces a bcrypt hash at the default cost.
func (BcryptScheme) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify checks the presented password against the stored hash.
func (BcryptScheme) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// SchemeByName returns the credential scheme for a config value, defaulting
// to plaintext for unknown names.
func SchemeByName(name string) CredentialScheme {
	if name == "bcrypt" {
		return BcryptScheme{}
	}
	return PlaintextScheme{}
}
