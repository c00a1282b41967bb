package booking

import (
	"context"
	"errors"
	"testing"

	"ayursutra/models"
	"ayursutra/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSelectionStore struct {
	sessions map[string]models.SelectionSession
}

func newMemSelectionStore() *memSelectionStore {
	return &memSelectionStore{sessions: make(map[string]models.SelectionSession)}
}

func (s *memSelectionStore) Load(_ context.Context, userID string) (*models.SelectionSession, error) {
	session := s.sessions[userID]
	return &session, nil
}

func (s *memSelectionStore) Save(_ context.Context, userID string, session models.SelectionSession) error {
	s.sessions[userID] = session
	return nil
}

func (s *memSelectionStore) Clear(_ context.Context, userID string) error {
	delete(s.sessions, userID)
	return nil
}

type memContextStore struct {
	contexts map[string]utils.SessionContext
}

func newMemContextStore() *memContextStore {
	return &memContextStore{contexts: make(map[string]utils.SessionContext)}
}

func (s *memContextStore) Load(_ context.Context, userID string) (*utils.SessionContext, error) {
	sc := s.contexts[userID]
	return &sc, nil
}

func (s *memContextStore) Save(_ context.Context, userID string, sc utils.SessionContext) error {
	s.contexts[userID] = sc
	return nil
}

type stubClinicReader struct {
	clinics map[string]*models.Clinic
	err     error
}

func (s *stubClinicReader) GetByID(id string) (*models.Clinic, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.clinics[id], nil
}

type stubReviewStore struct {
	reviews []models.Review
	err     error
}

func (s *stubReviewStore) ListByClinic(clinicID string) ([]models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Review
	for _, r := range s.reviews {
		if r.ClinicID == clinicID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReviewStore) Create(review *models.Review) error {
	if s.err != nil {
		return s.err
	}
	s.reviews = append(s.reviews, *review)
	return nil
}

type stubNotifier struct {
	sent     []string
	subjects []string
	err      error
}

func (s *stubNotifier) Send(_ context.Context, subject, message string) error {
	if s.err != nil {
		return s.err
	}
	s.subjects = append(s.subjects, subject)
	s.sent = append(s.sent, message)
	return nil
}

func testClinic() *models.Clinic {
	return &models.Clinic{
		ID:        "clinic-1",
		Name:      "Ayur Wellness",
		Therapies: []string{"Abhyanga", "Shirodhara"},
		TimeSlots: []models.TimeSlot{
			{Label: "10:00 AM", Available: true},
			{Label: "2:00 PM", Available: true},
		},
	}
}

func newTestService(notifier *stubNotifier) (*DefaultBookingService, *memSelectionStore, *memContextStore, *stubReviewStore) {
	selection := newMemSelectionStore()
	contexts := newMemContextStore()
	reviews := &stubReviewStore{}
	clinics := &stubClinicReader{clinics: map[string]*models.Clinic{"clinic-1": testClinic()}}
	svc := NewBookingService(clinics, reviews, selection, contexts, notifier)
	return svc, selection, contexts, reviews
}

func TestSelectClinicClearsTherapy(t *testing.T) {
	svc, selection, _, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-0",
		SelectedTherapy:  "Shirodhara",
	}

	clinic, err := svc.SelectClinic(context.Background(), "u1", "clinic-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayur Wellness", clinic.Name)

	got := selection.sessions["u1"]
	assert.Equal(t, "clinic-1", got.SelectedClinicID)
	assert.Empty(t, got.SelectedTherapy, "changing clinics drops the previous therapy")
}

func TestSelectClinicUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService(&stubNotifier{})

	_, err := svc.SelectClinic(context.Background(), "u1", "missing")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSelectTherapyRequiresClinic(t *testing.T) {
	svc, _, _, _ := newTestService(&stubNotifier{})

	err := svc.SelectTherapy(context.Background(), "u1", "Abhyanga")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "select a clinic first")
}

func TestSelectTherapyRejectsUnofferedTherapy(t *testing.T) {
	svc, selection, _, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{SelectedClinicID: "clinic-1"}

	err := svc.SelectTherapy(context.Background(), "u1", "Panchakarma")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, svc.SelectTherapy(context.Background(), "u1", "Abhyanga"))
	assert.Equal(t, "Abhyanga", selection.sessions["u1"].SelectedTherapy)
}

func TestBookSlotHappyPath(t *testing.T) {
	notifier := &stubNotifier{}
	svc, selection, contexts, _ := newTestService(notifier)
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-1",
		SelectedTherapy:  "Abhyanga",
	}

	result, err := svc.BookSlot(context.Background(), "u1", BookingRequest{
		Slot:   "10:00 AM",
		Email:  "patient@example.com",
		Rating: 5,
	})
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Equal(t, "Ayur Wellness", result.Booking.ClinicName)
	assert.Equal(t, "Abhyanga", result.Booking.Therapy)

	require.Len(t, selection.sessions["u1"].Bookings, 1)
	assert.Equal(t, "patient@example.com", contexts.contexts["u1"].ContactEmail, "submitted email is cached")
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Therapy: Abhyanga")
}

func TestBookSlotUsesCachedEmail(t *testing.T) {
	svc, selection, contexts, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-1",
		SelectedTherapy:  "Abhyanga",
	}
	contexts.contexts["u1"] = utils.SessionContext{ContactEmail: "cached@example.com"}

	result, err := svc.BookSlot(context.Background(), "u1", BookingRequest{Slot: "10:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, "cached@example.com", result.Booking.Email)
}

func TestBookSlotRequiresEmailWhenNoneCached(t *testing.T) {
	svc, selection, _, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-1",
		SelectedTherapy:  "Abhyanga",
	}

	_, err := svc.BookSlot(context.Background(), "u1", BookingRequest{Slot: "10:00 AM"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "Email is required")
}

func TestBookSlotSurvivesRelayFailure(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("relay unreachable")}
	svc, selection, _, _ := newTestService(notifier)
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-1",
		SelectedTherapy:  "Abhyanga",
	}

	result, err := svc.BookSlot(context.Background(), "u1", BookingRequest{
		Slot:  "10:00 AM",
		Email: "patient@example.com",
	})
	require.NoError(t, err, "a relay failure never voids the booking")
	assert.False(t, result.EmailSent)
	assert.Len(t, selection.sessions["u1"].Bookings, 1)
}

func TestBookSlotValidation(t *testing.T) {
	svc, selection, _, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-1",
		SelectedTherapy:  "Abhyanga",
	}

	cases := []BookingRequest{
		{Slot: "", Email: "a@b.c"},
		{Slot: "11:30 PM", Email: "a@b.c"},
		{Slot: "10:00 AM", Email: "a@b.c", Rating: 6},
		{Slot: "10:00 AM", Email: "a@b.c", Rating: -1},
	}
	for _, req := range cases {
		_, err := svc.BookSlot(context.Background(), "u1", req)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "request %+v", req)
	}
}

func TestBookSlotAcceptsUnratedBooking(t *testing.T) {
	svc, selection, _, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{
		SelectedClinicID: "clinic-1",
		SelectedTherapy:  "Abhyanga",
	}

	result, err := svc.BookSlot(context.Background(), "u1", BookingRequest{
		Slot:  "10:00 AM",
		Email: "a@b.c",
	})
	require.NoError(t, err, "zero rating means unrated, not invalid")
	assert.Zero(t, result.Booking.Rating)
}

func TestBookSlotRequiresTherapySelection(t *testing.T) {
	svc, selection, _, _ := newTestService(&stubNotifier{})
	selection.sessions["u1"] = models.SelectionSession{SelectedClinicID: "clinic-1"}

	_, err := svc.BookSlot(context.Background(), "u1", BookingRequest{Slot: "10:00 AM", Email: "a@b.c"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "therapy")
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	svc, _, _, reviews := newTestService(&stubNotifier{})

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.SubmitReview("clinic-1", "Asha", rating, "text")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "rating %d", rating)
	}

	review, err := svc.SubmitReview("clinic-1", "  ", 4, "Very relaxing")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", review.UserName)
	assert.NotEmpty(t, review.ID)
	assert.Len(t, reviews.reviews, 1)
}
