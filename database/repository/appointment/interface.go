package appointmentRepo

import "ayursutra/models"

// AppointmentRepository defines read access to appointment records.
// Appointments are written by a separate scheduling collaborator; this
// service only lists them for the clinic dashboard and reminder sweep.
type AppointmentRepository interface {
	ListByClinic(clinicID string) ([]models.Appointment, error)
	ListByDate(date string) ([]models.Appointment, error)
}
