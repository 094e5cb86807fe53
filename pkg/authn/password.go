// Package authn provides credential hashing and verification.
package authn

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a bcrypt hash of the given password. A fresh salt is
// generated per call and embedded in the returned hash, so the hash alone is
// sufficient to re-verify.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword reports whether the given password matches the stored bcrypt
// hash. bcrypt performs a constant-time comparison internally.
func CheckPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
