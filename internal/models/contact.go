package models

// Contact represents an unauthenticated contact-form submission.
// Contacts carry no owner; any authenticated user may read them.
type Contact struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}
