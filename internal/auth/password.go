// Package auth provides password hashing and bearer token handling.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// dummyHash is a valid bcrypt hash of a random string. Login verifies
// against it when the username is unknown so both failure paths do
// comparable work.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword derives a salted bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(password, encodedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	return err == nil
}

// VerifyDummy runs a bcrypt comparison against a throwaway hash.
// Always returns false.
func VerifyDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
	return false
}
