package store

import (
	"context"
	"errors"

	"github.com/thomaskerpen/CopilotTest/internal/models"
)

// Sentinel errors returned by all backends. Handlers map these to HTTP
// status codes; anything else is treated as a storage failure (500).
var (
	// ErrNotFound is returned when a row does not exist or is owned by
	// a different user (callers cannot tell the two apart).
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken is returned when an appointment insert loses the
	// uniqueness race on (date, time).
	ErrSlotTaken = errors.New("slot already booked")

	// ErrUsernameTaken is returned on a duplicate username at registration.
	ErrUsernameTaken = errors.New("username already taken")
)

// Store is the persistence capability set shared by all backends.
// Exactly one implementation is selected at startup; route logic never
// branches on the backend in use.
//
// CreateAppointment must be atomic with respect to the (date, time)
// uniqueness invariant: two concurrent calls for the same slot resolve
// to one success and one ErrSlotTaken, never two successes.
type Store interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// Todos
	CreateTodo(ctx context.Context, userID int64, text, dueDate string) (*models.Todo, error)
	ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error)
	UpdateTodo(ctx context.Context, id, userID int64, upd models.TodoUpdate) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id, userID int64) error

	// Appointments
	CreateAppointment(ctx context.Context, userID int64, date, time string) (*models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID int64) ([]models.Appointment, error)
	ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error)
	DeleteAppointment(ctx context.Context, id, userID int64) error
	DeleteAppointmentsBefore(ctx context.Context, date string) (int64, error)

	// Contacts
	CreateContact(ctx context.Context, name, email, message string) (*models.Contact, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
	GetContactByID(ctx context.Context, id int64) (*models.Contact, error)

	Close() error
}
