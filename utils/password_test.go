package utils

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := hashWithCost("organiser-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !CheckPasswordHash("organiser-pass", hash) {
		t.Errorf("Expected password to match its hash")
	}
	if CheckPasswordHash("other-pass", hash) {
		t.Errorf("Expected other password not to match")
	}
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}
}
