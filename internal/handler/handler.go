package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/thomaskerpen/CopilotTest/internal/middleware"
	"github.com/thomaskerpen/CopilotTest/internal/service"
	"github.com/thomaskerpen/CopilotTest/internal/store"
)

// Handler exposes the service over HTTP/JSON
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router builds the full route table. Registration, login and contact
// submission are public (rate limited); everything else requires a
// Bearer token.
func (h *Handler) Router(secret string, rl *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}).Methods("GET")

	// Public routes
	r.Handle("/api/register", rl.Limit(http.HandlerFunc(h.Register))).Methods("POST")
	r.Handle("/api/login", rl.Limit(http.HandlerFunc(h.Login))).Methods("POST")
	r.Handle("/api/contacts", rl.Limit(http.HandlerFunc(h.SubmitContact))).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.Auth(secret))
	authRouter.HandleFunc("/todos", h.ListTodos).Methods("GET")
	authRouter.HandleFunc("/todos", h.CreateTodo).Methods("POST")
	authRouter.HandleFunc("/todos/{id}", h.UpdateTodo).Methods("PUT")
	authRouter.HandleFunc("/todos/{id}", h.DeleteTodo).Methods("DELETE")
	authRouter.HandleFunc("/appointments/available/{date}", h.AvailableSlots).Methods("GET")
	authRouter.HandleFunc("/appointments", h.Book).Methods("POST")
	authRouter.HandleFunc("/appointments", h.MyAppointments).Methods("GET")
	authRouter.HandleFunc("/appointments/{id}", h.Cancel).Methods("DELETE")
	authRouter.HandleFunc("/contacts", h.ListContacts).Methods("GET")
	authRouter.HandleFunc("/contacts/{id}", h.GetContact).Methods("GET")

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps domain errors to HTTP status codes; anything
// unrecognized is an opaque storage failure.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		errorJSON(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, store.ErrSlotTaken):
		errorJSON(w, http.StatusConflict, "slot already booked")
	case errors.Is(err, store.ErrUsernameTaken):
		errorJSON(w, http.StatusConflict, "username already taken")
	case errors.Is(err, store.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, "invalid credentials")
	default:
		h.log.Errorf("Internal error: %v", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}
