package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
	"github.com/thomaskerpen/CopilotTest/internal/utils"
)

// Assignee resolution order for contact todos: the well-known admin
// account first, then the generic fallback, then the earliest user.
const (
	adminUsername    = "Thomas"
	fallbackUsername = "admin"
)

// message previews in contact todos are capped at this many characters
const previewLimit = 50

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitContact validates and persists a contact-form submission, then
// best-effort creates a linked todo for the admin user and sends the
// notification mail. Failures after the contact is stored are logged and
// swallowed: contact capture is the primary guarantee, everything else
// is secondary.
func (s *Service) SubmitContact(ctx context.Context, name, email, message string) (*models.Contact, error) {
	if name == "" {
		return nil, validationf("name is required")
	}
	if email == "" {
		return nil, validationf("email is required")
	}
	if message == "" {
		return nil, validationf("message is required")
	}
	if !emailRe.MatchString(email) {
		return nil, validationf("invalid email address")
	}

	contact, err := s.store.CreateContact(ctx, name, email, message)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Contact request %d received from %s <%s>", contact.ID, contact.Name, contact.Email)

	if err := s.createContactTodo(ctx, contact); err != nil {
		s.log.Errorf("Failed to create todo for contact %d: %v", contact.ID, err)
	}
	if s.mailer != nil && s.mailer.Enabled() {
		if err := s.mailer.SendContactNotification(contact); err != nil {
			s.log.Errorf("Failed to notify about contact %d: %v", contact.ID, err)
		}
	}

	return contact, nil
}

// createContactTodo resolves an assignee and files a todo that embeds
// the contact's identity and back-reference in its text, due today.
func (s *Service) createContactTodo(ctx context.Context, contact *models.Contact) error {
	assignee, err := s.resolveAssignee(ctx)
	if err != nil {
		return err
	}
	if assignee == nil {
		s.log.Infof("No user available for contact todo, skipping (contact %d)", contact.ID)
		return nil
	}

	preview := contact.Message
	if len([]rune(preview)) > previewLimit {
		preview = string([]rune(preview)[:previewLimit]) + "..."
	}
	text := fmt.Sprintf("%s Kontaktanfrage von %s: \"%s\" %s",
		utils.ContactMarker, contact.Name, preview, utils.EncodeContactRef(contact.ID))
	dueDate := time.Now().Format("2006-01-02")

	todo, err := s.store.CreateTodo(ctx, assignee.ID, text, dueDate)
	if err != nil {
		return err
	}

	s.log.Infof("Todo %d created for contact %d, assigned to %s", todo.ID, contact.ID, assignee.Username)
	return nil
}

// resolveAssignee returns the user contact todos belong to, or nil when
// no user exists at all
func (s *Service) resolveAssignee(ctx context.Context) (*models.User, error) {
	for _, name := range []string{adminUsername, fallbackUsername} {
		user, err := s.store.GetUserByUsername(ctx, name)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	s.log.Infof("No admin user found, assigning contact todo to %s", users[0].Username)
	return &users[0], nil
}

// ListContacts returns all contacts, newest first. Contacts carry no
// owner; visibility is global to authenticated callers.
func (s *Service) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.store.ListContacts(ctx)
}

// GetContact returns a single contact, typically resolved from the
// back-reference inside a contact todo's text
func (s *Service) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	return s.store.GetContactByID(ctx, id)
}
