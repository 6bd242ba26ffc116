package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Event is a competition or tryout listed by /events.
type Event struct {
	ID          ID        `json:"id"`
	Sport       string    `json:"sport"`
	Title       string    `json:"title"`
	StartsAt    Timestamp `json:"starts_at"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" for the identifier.
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var aux struct {
		plain
		MongoID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Event(aux.plain)
	if e.ID == "" {
		e.ID = aux.MongoID
	}
	return nil
}

// Registration links a user to an event.
type Registration struct {
	EventID ID     `json:"event_id"`
	UserID  ID     `json:"user_id"`
	Status  string `json:"status,omitempty"`
}

// RegistrationStatus is the response of POST /events/{id}/register.
type RegistrationStatus struct {
	Status string `json:"status"`
}

// Confirmation is the message shown after a successful registration.
func (s RegistrationStatus) Confirmation() string {
	if s.Status == "" {
		return "Registered"
	}
	return "Registered: " + s.Status
}

// Timestamp decodes the datetime formats the backend emits, with or without a
// zone offset. Values without an offset are taken as UTC. Anything it cannot
// read decodes to the zero value, which views show as TBA.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses s using the accepted backend layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("parse timestamp %q: unsupported format", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	*t = Timestamp{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	if parsed, err := ParseTimestamp(s); err == nil {
		*t = parsed
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
