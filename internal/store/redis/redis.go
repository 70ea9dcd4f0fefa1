// Package redis implements the store on a remote Redis, holding one JSON
// blob per collection under the keys "users", "todos", "appointments" and
// "contacts". Mutations run as WATCH transactions so a concurrent write to
// the same collection retries instead of being lost; in particular the
// slot-availability check and the appointment insert commit atomically.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

const (
	keyUsers        = "users"
	keyTodos        = "todos"
	keyAppointments = "appointments"
	keyContacts     = "contacts"

	maxRetries = 5
)

// userRec is the persisted user shape, carrying the password hash that
// models.User keeps out of JSON.
type userRec struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"createdAt"`
}

// Store provides persistence backed by a Redis server
type Store struct {
	rdb *redis.Client
}

// New connects to Redis at the given URL (redis://...)
func New(ctx context.Context, url string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// getList loads a collection; a missing key is an empty collection
func getList[T any](ctx context.Context, c redis.Cmdable, key string) ([]T, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// mutate runs fn inside a WATCH transaction on key and writes back the
// collection fn returns. Domain errors from fn abort the transaction and
// pass through unchanged; optimistic-lock failures retry.
func mutate[T any](ctx context.Context, s *Store, key string, fn func(items []T) ([]T, error)) error {
	for i := 0; i < maxRetries; i++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			items, err := getList[T](ctx, tx, key)
			if err != nil {
				return err
			}
			items, err = fn(items)
			if err != nil {
				return err
			}
			raw, err := json.Marshal(items)
			if err != nil {
				return fmt.Errorf("encode %s: %w", key, err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, raw, 0)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%s: transaction retries exhausted", key)
}

// nextID assigns max+1 within a collection
func nextID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}

// Users

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var created userRec
	err := mutate(ctx, s, keyUsers, func(users []userRec) ([]userRec, error) {
		for _, u := range users {
			if u.Username == username {
				return nil, store.ErrUsernameTaken
			}
		}
		created = userRec{
			ID:        nextID(users, func(u userRec) int64 { return u.ID }),
			Username:  username,
			Password:  passwordHash,
			CreatedAt: now(),
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}
	return userModel(created), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := getList[userRec](ctx, s.rdb, keyUsers)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return userModel(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	recs, err := getList[userRec](ctx, s.rdb, keyUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(recs))
	for _, u := range recs {
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

func (s *Store) CreateTodo(ctx context.Context, userID int64, text, dueDate string) (*models.Todo, error) {
	var created models.Todo
	err := mutate(ctx, s, keyTodos, func(todos []models.Todo) ([]models.Todo, error) {
		created = models.Todo{
			ID:        nextID(todos, func(t models.Todo) int64 { return t.ID }),
			UserID:    userID,
			Text:      text,
			DueDate:   dueDate,
			Completed: false,
			CreatedAt: now(),
		}
		return append(todos, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error) {
	todos, err := getList[models.Todo](ctx, s.rdb, keyTodos)
	if err != nil {
		return nil, err
	}
	var mine []models.Todo
	// newest first
	for i := len(todos) - 1; i >= 0; i-- {
		if todos[i].UserID == userID {
			mine = append(mine, todos[i])
		}
	}
	return mine, nil
}

func (s *Store) UpdateTodo(ctx context.Context, id, userID int64, upd models.TodoUpdate) (*models.Todo, error) {
	var updated models.Todo
	err := mutate(ctx, s, keyTodos, func(todos []models.Todo) ([]models.Todo, error) {
		for i := range todos {
			t := &todos[i]
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
			updated = *t
			return todos, nil
		}
		return nil, store.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id, userID int64) error {
	return mutate(ctx, s, keyTodos, func(todos []models.Todo) ([]models.Todo, error) {
		for i, t := range todos {
			if t.ID == id && t.UserID == userID {
				return append(todos[:i], todos[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}

// Appointments

func (s *Store) CreateAppointment(ctx context.Context, userID int64, date, timeSlot string) (*models.Appointment, error) {
	var created models.Appointment
	err := mutate(ctx, s, keyAppointments, func(appts []models.Appointment) ([]models.Appointment, error) {
		for _, a := range appts {
			if a.Date == date && a.Time == timeSlot {
				return nil, store.ErrSlotTaken
			}
		}
		created = models.Appointment{
			ID:        nextID(appts, func(a models.Appointment) int64 { return a.ID }),
			UserID:    userID,
			Date:      date,
			Time:      timeSlot,
			CreatedAt: now(),
		}
		return append(appts, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) ListAppointmentsByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	appts, err := getList[models.Appointment](ctx, s.rdb, keyAppointments)
	if err != nil {
		return nil, err
	}
	var mine []models.Appointment
	for _, a := range appts {
		if a.UserID == userID {
			mine = append(mine, a)
		}
	}
	sortAppointments(mine)
	return mine, nil
}

func (s *Store) ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	appts, err := getList[models.Appointment](ctx, s.rdb, keyAppointments)
	if err != nil {
		return nil, err
	}
	var matched []models.Appointment
	for _, a := range appts {
		if a.Date == date {
			matched = append(matched, a)
		}
	}
	sortAppointments(matched)
	return matched, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id, userID int64) error {
	return mutate(ctx, s, keyAppointments, func(appts []models.Appointment) ([]models.Appointment, error) {
		for i, a := range appts {
			if a.ID == id && a.UserID == userID {
				return append(appts[:i], appts[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}

func (s *Store) DeleteAppointmentsBefore(ctx context.Context, date string) (int64, error) {
	var removed int64
	err := mutate(ctx, s, keyAppointments, func(appts []models.Appointment) ([]models.Appointment, error) {
		kept := appts[:0]
		removed = 0
		for _, a := range appts {
			if a.Date < date {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Contacts

func (s *Store) CreateContact(ctx context.Context, name, email, message string) (*models.Contact, error) {
	var created models.Contact
	err := mutate(ctx, s, keyContacts, func(contacts []models.Contact) ([]models.Contact, error) {
		created = models.Contact{
			ID:        nextID(contacts, func(c models.Contact) int64 { return c.ID }),
			Name:      name,
			Email:     email,
			Message:   message,
			CreatedAt: now(),
		}
		return append(contacts, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	contacts, err := getList[models.Contact](ctx, s.rdb, keyContacts)
	if err != nil {
		return nil, err
	}
	// newest first
	out := make([]models.Contact, 0, len(contacts))
	for i := len(contacts) - 1; i >= 0; i-- {
		out = append(out, contacts[i])
	}
	return out, nil
}

func (s *Store) GetContactByID(ctx context.Context, id int64) (*models.Contact, error) {
	contacts, err := getList[models.Contact](ctx, s.rdb, keyContacts)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func sortAppointments(appts []models.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
