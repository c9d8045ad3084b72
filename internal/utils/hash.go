package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the provided PIN.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hashed PIN with its possible plaintext equivalent.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashCredential hashes a long credential such as a signed JWT. The
// value is digested first because bcrypt rejects inputs over 72 bytes.
func HashCredential(credential string) (string, error) {
	digest := sha256.Sum256([]byte(credential))
	bytes, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(digest[:])), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckCredential verifies a credential against its stored hash.
func CheckCredential(hashedCredential, credential string) bool {
	digest := sha256.Sum256([]byte(credential))
	return bcrypt.CompareHashAndPassword([]byte(hashedCredential), []byte(hex.EncodeToString(digest[:]))) == nil
}
