package models

// Todo represents a to-do item owned by a single user
type Todo struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Text      string `json:"text"`
	DueDate   string `json:"dueDate"` // Format: YYYY-MM-DD
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// TodoUpdate carries the mutable fields of a todo; nil means "leave unchanged"
type TodoUpdate struct {
	Text      *string `json:"text"`
	DueDate   *string `json:"dueDate"`
	Completed *bool   `json:"completed"`
}
