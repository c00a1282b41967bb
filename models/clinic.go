package models

import "time"

// TimeSlot is one bookable window a clinic offers. Available mirrors the
// dashboard's green/red toggle; new slots start available.
type TimeSlot struct {
	Label     string `bson:"label" json:"label"`
	Available bool   `bson:"available" json:"available"`
}

// Clinic is the directory record for one registered clinic. A clinic is owned
// by exactly one account (OwnerID); ownership is what role routing checks
// after a clinic sign-in. Latitude/Longitude are pointers because a record
// missing either coordinate is excluded from proximity filtering rather than
// treated as (0, 0).
type Clinic struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"clinic_name" json:"clinicName"`
	Address      string     `bson:"location" json:"address"`
	Latitude     *float64   `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64   `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Therapies    []string   `bson:"therapy" json:"therapies"`
	TimeSlots    []TimeSlot `bson:"time_slots" json:"timeSlots"`
	MobileNumber string     `bson:"clinic_mobilenumber" json:"mobileNumber"`
	OwnerID      string     `bson:"owner_id" json:"ownerId"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
}

// HasCoordinates reports whether the clinic carries both coordinates.
func (c *Clinic) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}
