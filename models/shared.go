package models

// Coordinates is a device location fix: latitude/longitude in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
