package models

import "time"

// Booking is a therapy booking recorded for the user who made it. It lives in
// the user's selection session, not the directory: the server-side record is
// the outbound relay email, and the local list is never rolled back on relay
// failure.
type Booking struct {
	ClinicID   string    `json:"clinicId"`
	ClinicName string    `json:"clinicName"`
	Therapy    string    `json:"therapy"`
	Slot       string    `json:"slot"`
	Email      string    `json:"email"`
	Rating     int       `json:"rating,omitempty"` // set once the user rates the therapy
	CreatedAt  time.Time `json:"createdAt"`
}

// SelectionSession holds the discovery view's selection state between
// requests. Selecting a clinic clears the therapy; selecting a therapy leaves
// the clinic untouched.
type SelectionSession struct {
	SelectedClinicID string    `json:"selectedClinicId,omitempty"`
	SelectedTherapy  string    `json:"selectedTherapy,omitempty"`
	Bookings         []Booking `json:"bookings,omitempty"`
}
