package domain

import (
	"encoding/json"
	"fmt"
)

// Role is the account type chosen at registration.
type Role string

const (
	RoleAthlete   Role = "athlete"
	RoleCoach     Role = "coach"
	RoleOrganizer Role = "organizer"
)

// Roles lists every role in the order the registration form cycles through them.
var Roles = []Role{RoleAthlete, RoleCoach, RoleOrganizer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Label returns the human-facing name used in forms.
func (r Role) Label() string {
	switch r {
	case RoleAthlete:
		return "Athlete"
	case RoleCoach:
		return "Coach/Manager"
	case RoleOrganizer:
		return "Organizer"
	default:
		return string(r)
	}
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (want athlete, coach or organizer)", s)
	}
	return r, nil
}

// Identity is the profile behind the current session token, as returned by /me.
type Identity struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts both "id" and "_id" for the identifier.
func (i *Identity) UnmarshalJSON(data []byte) error {
	type plain Identity
	var aux struct {
		plain
		MongoID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*i = Identity(aux.plain)
	if i.ID == "" {
		i.ID = aux.MongoID
	}
	return nil
}
