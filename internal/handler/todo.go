package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/thomaskerpen/CopilotTest/internal/middleware"
	"github.com/thomaskerpen/CopilotTest/internal/models"
)

// uid returns the authenticated user's id; only called behind the auth
// middleware
func uid(r *http.Request) int64 {
	claims, _ := middleware.UserClaims(r.Context())
	return claims.UserID
}

// pathID parses the {id} route variable
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

// ListTodos returns the caller's todos
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListTodos(r.Context(), uid(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	writeJSON(w, http.StatusOK, todos)
}

type createTodoRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"dueDate"`
}

// CreateTodo creates a todo owned by the caller
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	todo, err := h.svc.CreateTodo(r.Context(), uid(r), req.Text, req.DueDate)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// UpdateTodo applies a partial update to the caller's todo
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}

	var upd models.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	todo, err := h.svc.UpdateTodo(r.Context(), id, uid(r), upd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// DeleteTodo deletes the caller's todo
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), id, uid(r)); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
