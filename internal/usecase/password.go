package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// bcrypt refuses longer inputs.
	MaxPasswordBytes = 72
)

var passwordCost = bcrypt.DefaultCost

func checkPasswordPolicy(password string) error {
	if len(password) < MinPasswordLength {
		return newValidationError("password does not meet the policy",
			fmt.Sprintf("Passwords must be at least %d characters.", MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		return newValidationError("password does not meet the policy",
			fmt.Sprintf("Passwords must be at most %d bytes.", MaxPasswordBytes))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
