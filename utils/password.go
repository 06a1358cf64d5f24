package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// SeedPassword is the well-known temporary password assigned to seeded
// test records so their accounts stay reachable across re-seeds.
const SeedPassword = "Password123!"

const tempPasswordLength = 12

const tempPasswordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateTempPassword returns a random 12-character password drawn from
// letters, digits and symbols.
func GenerateTempPassword() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(tempPasswordChars)))
	for i := 0; i < tempPasswordLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(tempPasswordChars[n.Int64()])
	}
	return sb.String(), nil
}

// ValidatePassword enforces the account password policy: at least 8
// characters with an upper-case letter, a lower-case letter, a digit and a
// special character, and no spaces.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if strings.ContainsRune(password, ' ') {
		return errors.New("password must not contain spaces")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("password must contain an upper-case letter")
	case !hasLower:
		return errors.New("password must contain a lower-case letter")
	case !hasDigit:
		return errors.New("password must contain a digit")
	case !hasSpecial:
		return errors.New("password must contain a special character")
	}
	return nil
}
