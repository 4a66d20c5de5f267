package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the organiser's admin password. Tokens are issued by the HTTP layer.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type LoginInput struct {
	Password string `json:"password"`
}

type authService struct {
	adminPasswordHash []byte
}

func NewAuthService(adminPasswordHash string) AuthService {
	return &authService{adminPasswordHash: []byte(adminPasswordHash)}
}

func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if len(s.adminPasswordHash) == 0 {
		return ErrAuthInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrAuthInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
