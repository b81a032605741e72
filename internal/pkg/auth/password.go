package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost used for stored passwords
const BcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

var memorableAdjectives = []string{
	"Brave", "Bright", "Calm", "Clever", "Eager", "Gentle", "Golden",
	"Happy", "Kind", "Lively", "Lucky", "Mighty", "Noble", "Swift", "Wise",
}

var memorableNouns = []string{
	"Eagle", "Falcon", "Garden", "Harbor", "Lion", "Meadow", "Mountain",
	"Ocean", "Phoenix", "River", "Summit", "Tiger", "Valley", "Voyage",
}

// GenerateMemorablePassword builds an easy to communicate password in the
// form AdjectiveNoun123 for accounts approved without one
func GenerateMemorablePassword() (string, error) {
	adjIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(memorableAdjectives))))
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	nounIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(memorableNouns))))
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	// Three digit suffix in the 100-999 range
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	return fmt.Sprintf("%s%s%d",
		memorableAdjectives[adjIdx.Int64()],
		memorableNouns[nounIdx.Int64()],
		n.Int64()+100), nil
}
