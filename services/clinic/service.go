package clinic

import (
	"context"
	"strings"
	"time"

	"ayursutra/models"
	"ayursutra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError marks a clinic submission rejected before persistence.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ClinicStore is the repository surface the clinic service writes through.
type ClinicStore interface {
	GetByID(id string) (*models.Clinic, error)
	GetByOwner(ownerID string) (*models.Clinic, error)
	Create(clinic *models.Clinic) error
	Update(clinic *models.Clinic) error
}

// ReviewReader lists reviews for the dashboard.
type ReviewReader interface {
	ListByClinic(clinicID string) ([]models.Review, error)
}

// AppointmentReader lists appointments for the dashboard.
type AppointmentReader interface {
	ListByClinic(clinicID string) ([]models.Appointment, error)
}

// ContextStore caches the owner's clinic id after registration.
type ContextStore interface {
	Load(ctx context.Context, userID string) (*utils.SessionContext, error)
	Save(ctx context.Context, userID string, sc utils.SessionContext) error
}

// RegistrationInput is a clinic owner's signup submission.
type RegistrationInput struct {
	Name         string
	Address      string
	MobileNumber string
	Therapies    []string
	TimeSlots    []string
	Latitude     *float64
	Longitude    *float64
}

type ClinicService interface {
	Register(ctx context.Context, ownerID string, in RegistrationInput) (*models.Clinic, error)
	Dashboard(ctx context.Context, clinicID string) (*DashboardData, error)
	AddSlot(clinicID, label string) (*models.Clinic, error)
	ToggleSlot(clinicID, label string) (*models.Clinic, error)
}

type DefaultClinicService struct {
	Clinics      ClinicStore
	Reviews      ReviewReader
	Appointments AppointmentReader
	Context      ContextStore
}

func NewClinicService(clinics ClinicStore, reviews ReviewReader, appointments AppointmentReader, contexts ContextStore) *DefaultClinicService {
	return &DefaultClinicService{
		Clinics:      clinics,
		Reviews:      reviews,
		Appointments: appointments,
		Context:      contexts,
	}
}

func (s *DefaultClinicService) Register(ctx context.Context, ownerID string, in RegistrationInput) (*models.Clinic, error) {
	logger := utils.GetLogger()

	if ownerID == "" {
		return nil, &ValidationError{Message: "Please sign in before registering a clinic"}
	}
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.Clinics.GetByOwner(ownerID)
	if err != nil {
		logger.Warn("owner lookup failed during registration", zap.Error(err))
	}
	if existing != nil {
		return nil, &ValidationError{Message: "A clinic is already registered for this account"}
	}

	now := time.Now()
	clinic := &models.Clinic{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Address:      strings.TrimSpace(in.Address),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		Therapies:    trimAll(in.Therapies),
		TimeSlots:    newSlots(in.TimeSlots),
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Clinics.Create(clinic); err != nil {
		return nil, err
	}

	// Remember the clinic id so the dashboard resolves without a second
	// owner lookup.
	sc, err := s.Context.Load(ctx, ownerID)
	if err != nil {
		logger.Warn("failed to load session context", zap.Error(err))
		sc = &utils.SessionContext{}
	}
	sc.ClinicID = clinic.ID
	if err := s.Context.Save(ctx, ownerID, *sc); err != nil {
		logger.Warn("failed to cache clinic id", zap.Error(err))
	}

	return clinic, nil
}

func validateRegistration(in RegistrationInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Message: "Clinic name is required"}
	}
	mobile := strings.TrimSpace(in.MobileNumber)
	if len(mobile) < 1 || len(mobile) > 20 {
		return &ValidationError{Message: "Mobile number must be between 1 and 20 characters"}
	}
	if len(trimAll(in.Therapies)) == 0 {
		return &ValidationError{Message: "At least one therapy is required"}
	}
	if len(trimAll(in.TimeSlots)) == 0 {
		return &ValidationError{Message: "At least one time slot is required"}
	}
	if in.Latitude == nil || in.Longitude == nil {
		return &ValidationError{Message: "Clinic location is required"}
	}
	return nil
}

func (s *DefaultClinicService) AddSlot(clinicID, label string) (*models.Clinic, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, &ValidationError{Message: "Slot label is required"}
	}

	clinic, err := s.Clinics.GetByID(clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, &ValidationError{Message: "Clinic not found"}
	}
	for _, slot := range clinic.TimeSlots {
		if slot.Label == label {
			return nil, &ValidationError{Message: "This slot already exists"}
		}
	}

	clinic.TimeSlots = append(clinic.TimeSlots, models.TimeSlot{Label: label, Available: true})
	clinic.UpdatedAt = time.Now()
	if err := s.Clinics.Update(clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *DefaultClinicService) ToggleSlot(clinicID, label string) (*models.Clinic, error) {
	clinic, err := s.Clinics.GetByID(clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, &ValidationError{Message: "Clinic not found"}
	}

	found := false
	for i := range clinic.TimeSlots {
		if clinic.TimeSlots[i].Label == label {
			clinic.TimeSlots[i].Available = !clinic.TimeSlots[i].Available
			found = true
			break
		}
	}
	if !found {
		return nil, &ValidationError{Message: "Unknown time slot"}
	}

	clinic.UpdatedAt = time.Now()
	if err := s.Clinics.Update(clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func newSlots(labels []string) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(labels))
	for _, label := range trimAll(labels) {
		slots = append(slots, models.TimeSlot{Label: label, Available: true})
	}
	return slots
}
