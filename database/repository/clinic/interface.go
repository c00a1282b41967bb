package clinicRepo

import "ayursutra/models"

// ClinicRepository defines persistence operations for clinic records.
type ClinicRepository interface {
	// GetByID fetches a clinic by its id. Returns (nil, nil) when no clinic
	// has that id.
	GetByID(id string) (*models.Clinic, error)
	// GetByOwner fetches the clinic owned by the given account.
	// Returns (nil, nil) when the owner has no clinic: role routing needs
	// "no clinic" and "lookup failed" to be distinct outcomes.
	GetByOwner(ownerID string) (*models.Clinic, error)
	// List returns up to limit clinics in insertion order.
	List(limit int64) ([]models.Clinic, error)
	Create(clinic *models.Clinic) error
	Update(clinic *models.Clinic) error
}
