package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ayursutra/models"
	"ayursutra/services/notification"
	"ayursutra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError marks a booking request rejected before any side effect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ClinicReader is the slice of the clinic repository booking needs.
type ClinicReader interface {
	GetByID(id string) (*models.Clinic, error)
}

// ReviewStore persists patient reviews.
type ReviewStore interface {
	ListByClinic(clinicID string) ([]models.Review, error)
	Create(review *models.Review) error
}

// ContextStore caches durable per-user facts, here the contact email so it is
// solicited at most once.
type ContextStore interface {
	Load(ctx context.Context, userID string) (*utils.SessionContext, error)
	Save(ctx context.Context, userID string, sc utils.SessionContext) error
}

// BookingRequest is a slot submission against the current selection.
type BookingRequest struct {
	Slot   string
	Email  string
	Rating int
}

// BookingResult reports the recorded booking and whether the clinic was
// notified. A failed notification never voids the booking.
type BookingResult struct {
	Booking   models.Booking
	EmailSent bool
}

type BookingService interface {
	SelectClinic(ctx context.Context, userID, clinicID string) (*models.Clinic, error)
	SelectTherapy(ctx context.Context, userID, therapy string) error
	BookSlot(ctx context.Context, userID string, req BookingRequest) (*BookingResult, error)
	CurrentSelection(ctx context.Context, userID string) (*models.SelectionSession, error)
	SubmitReview(clinicID, userName string, rating int, text string) (*models.Review, error)
	ListReviews(clinicID string) ([]models.Review, error)
}

type DefaultBookingService struct {
	Clinics   ClinicReader
	Reviews   ReviewStore
	Selection SelectionStore
	Context   ContextStore
	Notifier  notification.Notifier
}

func NewBookingService(clinics ClinicReader, reviews ReviewStore, selection SelectionStore, contexts ContextStore, notifier notification.Notifier) *DefaultBookingService {
	return &DefaultBookingService{
		Clinics:   clinics,
		Reviews:   reviews,
		Selection: selection,
		Context:   contexts,
		Notifier:  notifier,
	}
}

func (s *DefaultBookingService) SelectClinic(ctx context.Context, userID, clinicID string) (*models.Clinic, error) {
	clinic, err := s.Clinics.GetByID(clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clinic: %w", err)
	}
	if clinic == nil {
		return nil, &ValidationError{Message: "Clinic not found"}
	}

	session, err := s.Selection.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Changing clinics invalidates any therapy chosen under the previous one.
	session.SelectedClinicID = clinicID
	session.SelectedTherapy = ""
	if err := s.Selection.Save(ctx, userID, *session); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *DefaultBookingService) SelectTherapy(ctx context.Context, userID, therapy string) error {
	therapy = strings.TrimSpace(therapy)
	if therapy == "" {
		return &ValidationError{Message: "Please select a therapy"}
	}

	session, err := s.Selection.Load(ctx, userID)
	if err != nil {
		return err
	}
	if session.SelectedClinicID == "" {
		return &ValidationError{Message: "Please select a clinic first"}
	}

	clinic, err := s.Clinics.GetByID(session.SelectedClinicID)
	if err != nil {
		return fmt.Errorf("failed to fetch clinic: %w", err)
	}
	if clinic != nil && len(clinic.Therapies) > 0 && !contains(clinic.Therapies, therapy) {
		return &ValidationError{Message: "Selected therapy is not offered by this clinic"}
	}

	session.SelectedTherapy = therapy
	return s.Selection.Save(ctx, userID, *session)
}

func (s *DefaultBookingService) BookSlot(ctx context.Context, userID string, req BookingRequest) (*BookingResult, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.Slot) == "" {
		return nil, &ValidationError{Message: "Please select a time slot"}
	}
	// Zero means unrated; a rating, once given, is 1 to 5.
	if req.Rating < 0 || req.Rating > 5 {
		return nil, &ValidationError{Message: "Rating must be between 1 and 5, or left empty"}
	}

	session, err := s.Selection.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.SelectedClinicID == "" {
		return nil, &ValidationError{Message: "Please select a clinic first"}
	}
	if session.SelectedTherapy == "" {
		return nil, &ValidationError{Message: "Please select a therapy first"}
	}

	clinic, err := s.Clinics.GetByID(session.SelectedClinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clinic: %w", err)
	}
	if clinic == nil {
		return nil, &ValidationError{Message: "Clinic not found"}
	}
	if len(clinic.TimeSlots) > 0 && !hasSlot(clinic.TimeSlots, req.Slot) {
		return nil, &ValidationError{Message: "Selected time slot is not offered by this clinic"}
	}

	email, err := s.resolveEmail(ctx, userID, req.Email)
	if err != nil {
		return nil, err
	}

	b := models.Booking{
		ClinicID:   clinic.ID,
		ClinicName: clinic.Name,
		Therapy:    session.SelectedTherapy,
		Slot:       req.Slot,
		Email:      email,
		Rating:     req.Rating,
		CreatedAt:  time.Now(),
	}
	session.Bookings = append(session.Bookings, b)
	if err := s.Selection.Save(ctx, userID, *session); err != nil {
		return nil, err
	}

	// The booking stands whether or not the clinic mailbox is reachable; a
	// relay failure downgrades the confirmation, nothing more.
	result := &BookingResult{Booking: b, EmailSent: true}
	if err := s.Notifier.Send(ctx, notification.BookingSubject, notification.BookingMessage(b)); err != nil {
		logger.Warn("failed to notify clinic of booking",
			zap.String("clinicId", clinic.ID),
			zap.Error(err))
		result.EmailSent = false
	}
	return result, nil
}

func (s *DefaultBookingService) CurrentSelection(ctx context.Context, userID string) (*models.SelectionSession, error) {
	return s.Selection.Load(ctx, userID)
}

func (s *DefaultBookingService) SubmitReview(clinicID, userName string, rating int, text string) (*models.Review, error) {
	if clinicID == "" {
		return nil, &ValidationError{Message: "Clinic is required"}
	}
	if rating < 1 || rating > 5 {
		return nil, &ValidationError{Message: "Rating must be between 1 and 5"}
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ClinicID:  clinicID,
		UserName:  strings.TrimSpace(userName),
		Rating:    rating,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now(),
	}
	if review.UserName == "" {
		review.UserName = "Anonymous"
	}
	if err := s.Reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return review, nil
}

func (s *DefaultBookingService) ListReviews(clinicID string) ([]models.Review, error) {
	reviews, err := s.Reviews.ListByClinic(clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// resolveEmail prefers the submitted address and otherwise falls back to the
// cached one. A newly submitted address is cached for future bookings.
func (s *DefaultBookingService) resolveEmail(ctx context.Context, userID, submitted string) (string, error) {
	logger := utils.GetLogger()

	submitted = strings.TrimSpace(submitted)
	sc, err := s.Context.Load(ctx, userID)
	if err != nil {
		logger.Warn("failed to load session context", zap.Error(err))
		sc = &utils.SessionContext{}
	}

	if submitted == "" {
		if sc.ContactEmail == "" {
			return "", &ValidationError{Message: "Email is required to confirm your booking"}
		}
		return sc.ContactEmail, nil
	}

	if submitted != sc.ContactEmail {
		sc.ContactEmail = submitted
		if err := s.Context.Save(ctx, userID, *sc); err != nil {
			logger.Warn("failed to cache contact email", zap.Error(err))
		}
	}
	return submitted, nil
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func hasSlot(slots []models.TimeSlot, label string) bool {
	for _, slot := range slots {
		if slot.Label == label {
			return true
		}
	}
	return false
}
