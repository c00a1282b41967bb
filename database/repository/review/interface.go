package reviewRepo

import "ayursutra/models"

// ReviewRepository defines persistence operations for review records.
// Reviews are append-only: there is no update or delete.
type ReviewRepository interface {
	ListByClinic(clinicID string) ([]models.Review, error)
	Create(review *models.Review) error
}
