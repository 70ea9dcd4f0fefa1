package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/thomaskerpen/CopilotTest/internal/config"
	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// ErrInvalidCredentials is returned by Login for an unknown username or
// a wrong password; callers must not learn which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError marks malformed or missing input, detected before any
// persistence attempt. Handlers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Mailer sends operational notifications; a disabled mailer is a no-op
// collaborator.
type Mailer interface {
	Enabled() bool
	SendContactNotification(contact *models.Contact) error
}

// Service handles business logic on top of a pluggable store
type Service struct {
	store  store.Store
	log    *logrus.Logger
	config *config.Config
	mailer Mailer
}

// NewService initializes a new service. mailer may be nil.
func NewService(st store.Store, log *logrus.Logger, cfg *config.Config, mailer Mailer) *Service {
	return &Service{store: st, log: log, config: cfg, mailer: mailer}
}
