package domain

// Notification is a read-only inbox entry. Lists keep the backend order,
// which is newest first.
type Notification struct {
	ID    ID     `json:"id,omitempty"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
