// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordMaxBytes is the longest input bcrypt accepts.
const PasswordMaxBytes = 72

// ErrPasswordTooLong is returned for passwords bcrypt would reject.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// dummyHash is compared against when a login names an unknown account, so
// both failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ibis-unknown-account"), bcrypt.DefaultCost)

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > PasswordMaxBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether plainTextPassword matches existingHash.
// An empty hash is checked against a throwaway hash and always fails.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if existingHash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plainTextPassword))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}
