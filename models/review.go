package models

import "time"

// Review is an append-only rating record for a clinic. One submission
// produces one record; reviews are never edited or deleted here.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	ClinicID  string    `bson:"clinic_id" json:"clinicId"`
	UserName  string    `bson:"user_name" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"` // 1-5
	Text      string    `bson:"comment" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
