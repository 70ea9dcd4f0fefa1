package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thomaskerpen/CopilotTest/internal/models"
)

// AvailableSlots reports available vs. booked slots for a date
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.AvailableSlots(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

type bookRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Book books a slot for the caller
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	appt, err := h.svc.Book(r.Context(), uid(r), req.Date, req.Time)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// MyAppointments returns the caller's appointments
func (h *Handler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.MyAppointments(r.Context(), uid(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

// Cancel deletes the caller's appointment
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.svc.Cancel(r.Context(), id, uid(r)); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
