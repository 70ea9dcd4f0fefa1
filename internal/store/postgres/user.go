package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// CreateUser creates a new user. Usernames are unique and case-sensitive.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now(),
	}
	query := `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := s.db.QueryRowContext(ctx, query, username, passwordHash, user.CreatedAt).
		Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, store.ErrUsernameTaken
		}
		return nil, wrap("create user", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by exact username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`
	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrap("get user", err)
	}
	return user, nil
}

// ListUsers returns all users in creation order
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		ORDER BY id ASC`)
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, wrap("list users", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
