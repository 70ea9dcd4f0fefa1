package models

// Appointment represents a booked time slot. The (date, time) pair is
// unique across all users: one booking per slot, system-wide.
type Appointment struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Date      string `json:"date"` // Format: YYYY-MM-DD
	Time      string `json:"time"` // One of the fixed daily slots, e.g. "14:30"
	CreatedAt string `json:"createdAt"`
}
