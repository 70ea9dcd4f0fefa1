package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// CreateContact persists a contact-form submission
func (s *Store) CreateContact(ctx context.Context, name, email, message string) (*models.Contact, error) {
	contact := &models.Contact{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: now(),
	}
	query := `
		INSERT INTO contacts (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := s.db.QueryRowContext(ctx, query, name, email, message, contact.CreatedAt).
		Scan(&contact.ID)
	if err != nil {
		return nil, wrap("create contact", err)
	}
	return contact, nil
}

// ListContacts returns all contacts, newest first
func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, wrap("list contacts", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, wrap("list contacts", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetContactByID retrieves a single contact
func (s *Store) GetContactByID(ctx context.Context, id int64) (*models.Contact, error) {
	contact := &models.Contact{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, message, created_at
		FROM contacts
		WHERE id = $1`, id).
		Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Message, &contact.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrap("get contact", err)
	}
	return contact, nil
}
