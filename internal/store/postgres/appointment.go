package postgres

import (
	"context"

	"github.com/thomaskerpen/CopilotTest/internal/models"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// CreateAppointment books a slot for userID. The UNIQUE (date, time)
// constraint is the authority on slot availability: a concurrent booking
// for the same slot fails here with store.ErrSlotTaken, so no prior
// read is needed.
func (s *Store) CreateAppointment(ctx context.Context, userID int64, date, timeSlot string) (*models.Appointment, error) {
	appt := &models.Appointment{
		UserID:    userID,
		Date:      date,
		Time:      timeSlot,
		CreatedAt: now(),
	}
	query := `
		INSERT INTO appointments (user_id, date, time, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := s.db.QueryRowContext(ctx, query, userID, date, timeSlot, appt.CreatedAt).
		Scan(&appt.ID)
	if err != nil {
		if isUniqueViolation(err, "appointments_slot_key") {
			return nil, store.ErrSlotTaken
		}
		return nil, wrap("create appointment", err)
	}
	return appt, nil
}

// ListAppointmentsByUser returns all appointments owned by userID,
// ordered by (date, time) ascending
func (s *Store) ListAppointmentsByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, time, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY date, time`, userID)
	if err != nil {
		return nil, wrap("list appointments", err)
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &a.CreatedAt); err != nil {
			return nil, wrap("list appointments", err)
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

// ListAppointmentsByDate returns all appointments on the given date,
// regardless of owner
func (s *Store) ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, time, created_at
		FROM appointments
		WHERE date = $1
		ORDER BY time`, date)
	if err != nil {
		return nil, wrap("list appointments by date", err)
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &a.CreatedAt); err != nil {
			return nil, wrap("list appointments by date", err)
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

// DeleteAppointment deletes the appointment identified by (id, userID).
// Zero affected rows yields store.ErrNotFound.
func (s *Store) DeleteAppointment(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap("delete appointment", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete appointment", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAppointmentsBefore removes all appointments dated strictly before
// date and reports how many rows were removed. Dates are ISO strings, so
// lexicographic comparison is chronological.
func (s *Store) DeleteAppointmentsBefore(ctx context.Context, date string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM appointments WHERE date < $1`, date)
	if err != nil {
		return 0, wrap("purge appointments", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap("purge appointments", err)
	}
	return n, nil
}
