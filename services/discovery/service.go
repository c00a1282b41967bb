package discovery

import (
	"fmt"

	"ayursutra/models"
	"ayursutra/utils"

	"go.uber.org/zap"
)

// listingLimit caps how many clinics a single listing request returns.
const listingLimit = 100

// ClinicReader is the slice of the clinic repository the discovery service needs.
type ClinicReader interface {
	GetByID(id string) (*models.Clinic, error)
	List(limit int64) ([]models.Clinic, error)
}

// DiscoveryService lists clinics for browsing, optionally narrowed to the
// caller's surroundings.
type DiscoveryService interface {
	// ListClinics returns clinics for the given position. With a position the
	// result is restricted to nearby clinics, falling back to the full listing
	// when nothing is within range. Without a position the full listing is
	// returned as-is.
	ListClinics(position *models.Coordinates) ([]models.Clinic, bool, error)

	// GetClinic fetches a single clinic by its public id.
	GetClinic(id string) (*models.Clinic, error)
}

type DefaultDiscoveryService struct {
	Clinics ClinicReader
}

func NewDiscoveryService(clinics ClinicReader) *DefaultDiscoveryService {
	return &DefaultDiscoveryService{Clinics: clinics}
}

func (s *DefaultDiscoveryService) ListClinics(position *models.Coordinates) ([]models.Clinic, bool, error) {
	clinics, err := s.Clinics.List(listingLimit)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list clinics: %w", err)
	}

	if position == nil {
		return clinics, false, nil
	}

	nearby := Nearby(clinics, *position)
	if len(nearby) == 0 {
		// An empty neighbourhood falls back to the full listing so the
		// directory never looks empty just because the caller is remote.
		utils.GetLogger().Debug("no clinics within range; returning full listing",
			zap.Float64("lat", position.Latitude),
			zap.Float64("lng", position.Longitude))
		return clinics, false, nil
	}
	return nearby, true, nil
}

func (s *DefaultDiscoveryService) GetClinic(id string) (*models.Clinic, error) {
	if id == "" {
		return nil, fmt.Errorf("clinic id is required")
	}
	clinic, err := s.Clinics.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clinic: %w", err)
	}
	return clinic, nil
}
