package models

// Appointment is a scheduled visit at a clinic. This service only reads
// appointments for the dashboard; they are written by a collaborator.
type Appointment struct {
	ID       string `bson:"id" json:"id"`
	ClinicID string `bson:"clinic_id" json:"clinicId"`
	UserName string `bson:"user_name" json:"userName"`
	Slot     string `bson:"slot" json:"slot"`
	Date     string `bson:"date" json:"date"`
}
