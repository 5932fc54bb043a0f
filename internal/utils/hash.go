package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt digest from the given plaintext
// password using the provided cost factor.
//
// The digest embeds its own salt and cost, so no additional bookkeeping is
// required to verify it later with [CheckPassword].
//
// Parameters:
//
//	password - plaintext password to hash
//	cost     - bcrypt cost factor; values below bcrypt.MinCost select
//	           bcrypt.DefaultCost
//
// Returns:
//
//	string - the bcrypt digest in its standard encoded form
//	error  - non-nil if the password exceeds bcrypt's length limit or
//	         hashing fails
//
// Example usage:
//
//	digest, err := utils.HashPassword("Passw0rd!", 10)
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt digest. Comparison cost is dominated by bcrypt itself, which is
// constant-time with respect to the password contents.
//
// Example usage:
//
//	if !utils.CheckPassword(given, stored) {
//	    // reject credentials
//	}
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
