package service

import (
	"context"
	"errors"

	"github.com/thomaskerpen/CopilotTest/internal/auth"
	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// Register creates a new user with a hashed password. Usernames are
// unique and case-sensitive; a duplicate surfaces store.ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, validationf("username and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, username, hash)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", validationf("username and password are required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.MakeToken(user.ID, user.Username, s.config.JWTSecret)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return token, nil
}
