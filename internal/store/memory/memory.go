// Package memory implements the store on in-process collections with
// optional JSON-file persistence. It mirrors the blob-per-collection
// layout the remote KV backend uses, so ids are assigned max+1 per
// collection. All operations serialize on one mutex, which also makes
// the slot-uniqueness check-then-insert atomic.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// userRec is the persisted user shape. Unlike models.User it carries the
// password hash, which the model deliberately keeps out of JSON.
type userRec struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"createdAt"`
}

type state struct {
	Users        []userRec            `json:"users"`
	Todos        []models.Todo        `json:"todos"`
	Appointments []models.Appointment `json:"appointments"`
	Contacts     []models.Contact     `json:"contacts"`
}

// Store is an in-process store. With a non-empty path every mutation is
// flushed to a single JSON file; with an empty path data lives only in
// memory (the test configuration).
type Store struct {
	mu   sync.Mutex
	path string
	st   state
}

// New opens the store, loading existing data from path when present
func New(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if err := json.Unmarshal(b, &s.st); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return nil }

// save flushes the full state; callers hold s.mu
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Users

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.st.Users {
		if u.Username == username {
			return nil, store.ErrUsernameTaken
		}
	}
	rec := userRec{
		ID:        nextID(s.st.Users, func(u userRec) int64 { return u.ID }),
		Username:  username,
		Password:  passwordHash,
		CreatedAt: now(),
	}
	s.st.Users = append(s.st.Users, rec)
	if err := s.save(); err != nil {
		return nil, err
	}
	return userModel(rec), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.st.Users {
		if u.Username == username {
			return userModel(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.st.Users))
	for _, u := range s.st.Users {
		users = append(users, *userModel(u))
	}
	return users, nil
}

func userModel(u userRec) *models.User {
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt,
	}
}

// Todos

func (s *Store) CreateTodo(_ context.Context, userID int64, text, dueDate string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := models.Todo{
		ID:        nextID(s.st.Todos, func(t models.Todo) int64 { return t.ID }),
		UserID:    userID,
		Text:      text,
		DueDate:   dueDate,
		Completed: false,
		CreatedAt: now(),
	}
	s.st.Todos = append(s.st.Todos, todo)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *Store) ListTodosByUser(_ context.Context, userID int64) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var todos []models.Todo
	// newest first
	for i := len(s.st.Todos) - 1; i >= 0; i-- {
		if s.st.Todos[i].UserID == userID {
			todos = append(todos, s.st.Todos[i])
		}
	}
	return todos, nil
}

func (s *Store) UpdateTodo(_ context.Context, id, userID int64, upd models.TodoUpdate) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.st.Todos {
		t := &s.st.Todos[i]
		if t.ID != id || t.UserID != userID {
			continue
		}
		if upd.Text != nil {
			t.Text = *upd.Text
		}
		if upd.DueDate != nil {
			t.DueDate = *upd.DueDate
		}
		if upd.Completed != nil {
			t.Completed = *upd.Completed
		}
		if err := s.save(); err != nil {
			return nil, err
		}
		out := *t
		return &out, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) DeleteTodo(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.st.Todos {
		if t.ID == id && t.UserID == userID {
			s.st.Todos = append(s.st.Todos[:i], s.st.Todos[i+1:]...)
			return s.save()
		}
	}
	return store.ErrNotFound
}

// Appointments

func (s *Store) CreateAppointment(_ context.Context, userID int64, date, timeSlot string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// check-then-insert is safe here: the mutex serializes bookings
	for _, a := range s.st.Appointments {
		if a.Date == date && a.Time == timeSlot {
			return nil, store.ErrSlotTaken
		}
	}
	appt := models.Appointment{
		ID:        nextID(s.st.Appointments, func(a models.Appointment) int64 { return a.ID }),
		UserID:    userID,
		Date:      date,
		Time:      timeSlot,
		CreatedAt: now(),
	}
	s.st.Appointments = append(s.st.Appointments, appt)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *Store) ListAppointmentsByUser(_ context.Context, userID int64) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var appts []models.Appointment
	for _, a := range s.st.Appointments {
		if a.UserID == userID {
			appts = append(appts, a)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (s *Store) ListAppointmentsByDate(_ context.Context, date string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var appts []models.Appointment
	for _, a := range s.st.Appointments {
		if a.Date == date {
			appts = append(appts, a)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (s *Store) DeleteAppointment(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.st.Appointments {
		if a.ID == id && a.UserID == userID {
			s.st.Appointments = append(s.st.Appointments[:i], s.st.Appointments[i+1:]...)
			return s.save()
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteAppointmentsBefore(_ context.Context, date string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.st.Appointments[:0]
	var removed int64
	for _, a := range s.st.Appointments {
		if a.Date < date {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.st.Appointments = kept
	if removed > 0 {
		if err := s.save(); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

// Contacts

func (s *Store) CreateContact(_ context.Context, name, email, message string) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contact := models.Contact{
		ID:        nextID(s.st.Contacts, func(c models.Contact) int64 { return c.ID }),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: now(),
	}
	s.st.Contacts = append(s.st.Contacts, contact)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *Store) ListContacts(_ context.Context) ([]models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts := make([]models.Contact, 0, len(s.st.Contacts))
	// newest first
	for i := len(s.st.Contacts) - 1; i >= 0; i-- {
		contacts = append(contacts, s.st.Contacts[i])
	}
	return contacts, nil
}

func (s *Store) GetContactByID(_ context.Context, id int64) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.st.Contacts {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

// nextID assigns max+1 within a collection, matching the KV layout
func nextID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}

func sortAppointments(appts []models.Appointment) {
	// (date, time) ascending; ISO strings compare chronologically
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
