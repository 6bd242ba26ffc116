package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Athlete is a public athlete profile as listed by /athletes.
type Athlete struct {
	ID       ID     `json:"id"`
	UserID   ID     `json:"user_id,omitempty"`
	Sport    string `json:"sport"`
	Position string `json:"position,omitempty"`
	Location string `json:"location,omitempty"`
	Stats    Stats  `json:"stats,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" for the identifier.
func (a *Athlete) UnmarshalJSON(data []byte) error {
	type plain Athlete
	var aux struct {
		plain
		MongoID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = Athlete(aux.plain)
	if a.ID == "" {
		a.ID = aux.MongoID
	}
	return nil
}

// Title is the card heading: the position, or "Athlete" when none is set.
func (a Athlete) Title() string {
	if a.Position != "" {
		return a.Position
	}
	return "Athlete"
}

// Stat returns a named stat and whether the profile carries it.
func (a Athlete) Stat(key string) (float64, bool) {
	v, ok := a.Stats[key]
	return v, ok
}

// Stats holds the numeric stats of a profile. Entries that are not numbers,
// or numeric strings, are dropped while decoding so one odd value does not
// fail the whole list.
type Stats map[string]float64

func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*s = nil
		return nil
	}
	out := make(Stats, len(raw))
	for k, v := range raw {
		if f, ok := statNumber(v); ok {
			out[k] = f
		}
	}
	*s = out
	return nil
}

func statNumber(v json.RawMessage) (float64, bool) {
	if string(v) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, true
	}
	var str string
	if err := json.Unmarshal(v, &str); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	return f, err == nil
}

// AthleteFilter is the sparse search form for /athletes. An empty string means
// the field is absent.
type AthleteFilter struct {
	Sport     string
	Position  string
	Location  string
	StatKey   string
	StatValue string
}

// HasStatThreshold reports whether both halves of the stat threshold are set.
func (f AthleteFilter) HasStatThreshold() bool {
	return f.StatKey != "" && f.StatValue != ""
}
