package domain

// Team is a roster managed by a coach.
type Team struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport,omitempty"`
}

// CoachDashboard is the response of /dashboard/coach.
type CoachDashboard struct {
	Teams         []Team         `json:"teams"`
	Events        []Event        `json:"events"`
	Registrations []Registration `json:"registrations"`
}
