package service

import (
	"context"

	"github.com/thomaskerpen/CopilotTest/internal/models"
)

// SlotCatalog is the fixed ordered set of bookable times. It is the same
// for every calendar date; the server never filters by weekday or past
// dates (the client may advise against those, the server does not).
var SlotCatalog = []string{
	"14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

// SlotAvailability is the availability picture for a single date
type SlotAvailability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}

// AvailableSlots partitions the slot catalog for a date into available
// and booked, both in catalog order. A date without appointments yields
// the full catalog as available.
func (s *Service) AvailableSlots(ctx context.Context, date string) (*SlotAvailability, error) {
	if date == "" {
		return nil, validationf("date is required")
	}

	appts, err := s.store.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(appts))
	for _, a := range appts {
		booked[a.Time] = true
	}

	out := &SlotAvailability{
		Date:           date,
		AvailableSlots: []string{},
		BookedSlots:    []string{},
	}
	for _, slot := range SlotCatalog {
		if booked[slot] {
			out.BookedSlots = append(out.BookedSlots, slot)
		} else {
			out.AvailableSlots = append(out.AvailableSlots, slot)
		}
	}
	return out, nil
}

// Book books the given slot for userID. Slot uniqueness is global across
// users and enforced atomically by the store; a lost race surfaces
// store.ErrSlotTaken, never a double booking.
func (s *Service) Book(ctx context.Context, userID int64, date, timeSlot string) (*models.Appointment, error) {
	if date == "" || timeSlot == "" {
		return nil, validationf("date and time are required")
	}

	appt, err := s.store.CreateAppointment(ctx, userID, date, timeSlot)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Appointment %d booked by user %d: %s %s", appt.ID, userID, date, timeSlot)
	return appt, nil
}

// MyAppointments returns the caller's appointments ordered by
// (date, time) ascending
func (s *Service) MyAppointments(ctx context.Context, userID int64) ([]models.Appointment, error) {
	return s.store.ListAppointmentsByUser(ctx, userID)
}

// Cancel deletes the caller's appointment. An absent or foreign-owned id
// surfaces store.ErrNotFound, leaving foreign bookings intact.
func (s *Service) Cancel(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteAppointment(ctx, id, userID); err != nil {
		return err
	}
	s.log.Infof("Appointment %d cancelled by user %d", id, userID)
	return nil
}
