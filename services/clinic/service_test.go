package clinic

import (
	"context"
	"errors"
	"testing"

	"ayursutra/models"
	"ayursutra/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClinicStore struct {
	byID      map[string]*models.Clinic
	byOwner   map[string]*models.Clinic
	getErr    error
	createErr error
	updated   *models.Clinic
}

func newMemClinicStore() *memClinicStore {
	return &memClinicStore{
		byID:    make(map[string]*models.Clinic),
		byOwner: make(map[string]*models.Clinic),
	}
}

func (s *memClinicStore) GetByID(id string) (*models.Clinic, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byID[id], nil
}

func (s *memClinicStore) GetByOwner(ownerID string) (*models.Clinic, error) {
	return s.byOwner[ownerID], nil
}

func (s *memClinicStore) Create(clinic *models.Clinic) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.byID[clinic.ID] = clinic
	s.byOwner[clinic.OwnerID] = clinic
	return nil
}

func (s *memClinicStore) Update(clinic *models.Clinic) error {
	s.byID[clinic.ID] = clinic
	s.updated = clinic
	return nil
}

type stubReviewReader struct {
	reviews []models.Review
	err     error
}

func (s *stubReviewReader) ListByClinic(string) ([]models.Review, error) {
	return s.reviews, s.err
}

type stubAppointmentReader struct {
	appointments []models.Appointment
	err          error
}

func (s *stubAppointmentReader) ListByClinic(string) ([]models.Appointment, error) {
	return s.appointments, s.err
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

func validInput() RegistrationInput {
	lat, lng := 28.6139, 77.2090
	return RegistrationInput{
		Name:         "Ayur Wellness",
		Address:      "12 MG Road",
		MobileNumber: "9876543210",
		Therapies:    []string{"Abhyanga"},
		TimeSlots:    []string{"10:00 AM", "2:00 PM"},
		Latitude:     &lat,
		Longitude:    &lng,
	}
}

func newTestService() (*DefaultClinicService, *memClinicStore, *stubReviewReader, *stubAppointmentReader, *memContextStore) {
	store := newMemClinicStore()
	reviews := &stubReviewReader{}
	appointments := &stubAppointmentReader{}
	contexts := newMemContextStore()
	svc := NewClinicService(store, reviews, appointments, contexts)
	return svc, store, reviews, appointments, contexts
}

func TestRegisterCreatesClinicAndCachesID(t *testing.T) {
	svc, store, _, _, contexts := newTestService()

	clinic, err := svc.Register(context.Background(), "owner-1", validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, clinic.ID)
	assert.Equal(t, "owner-1", clinic.OwnerID)
	require.Len(t, clinic.TimeSlots, 2)
	assert.True(t, clinic.TimeSlots[0].Available, "new slots start available")

	assert.Equal(t, clinic.ID, contexts.contexts["owner-1"].ClinicID)
	assert.Same(t, clinic, store.byID[clinic.ID])
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	mutations := map[string]func(*RegistrationInput){
		"missing name":      func(in *RegistrationInput) { in.Name = "  " },
		"empty mobile":      func(in *RegistrationInput) { in.MobileNumber = "" },
		"oversized mobile":  func(in *RegistrationInput) { in.MobileNumber = "123456789012345678901" },
		"no therapies":      func(in *RegistrationInput) { in.Therapies = []string{" "} },
		"no slots":          func(in *RegistrationInput) { in.TimeSlots = nil },
		"missing latitude":  func(in *RegistrationInput) { in.Latitude = nil },
		"missing longitude": func(in *RegistrationInput) { in.Longitude = nil },
	}
	for name, mutate := range mutations {
		in := validInput()
		mutate(&in)
		_, err := svc.Register(context.Background(), "owner-1", in)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, name)
	}
}

func TestRegisterRejectsSecondClinicForOwner(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "owner-1", validInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "owner-1", validInput())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "already registered")
}

func TestRegisterRequiresSignedInOwner(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Register(context.Background(), "", validInput())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDashboardAggregatesAllSections(t *testing.T) {
	svc, store, reviews, appointments, _ := newTestService()
	store.byID["clinic-1"] = &models.Clinic{ID: "clinic-1", Name: "Ayur Wellness"}
	reviews.reviews = []models.Review{{ID: "r1", ClinicID: "clinic-1", Rating: 5}}
	appointments.appointments = []models.Appointment{{ID: "a1", ClinicID: "clinic-1", Slot: "10:00 AM"}}

	data, err := svc.Dashboard(context.Background(), "clinic-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayur Wellness", data.Clinic.Name)
	assert.Len(t, data.Appointments, 1)
	assert.Len(t, data.Reviews, 1)
}

func TestDashboardDegradesPerSection(t *testing.T) {
	svc, store, reviews, appointments, _ := newTestService()
	store.byID["clinic-1"] = &models.Clinic{ID: "clinic-1", Name: "Ayur Wellness"}
	reviews.err = errors.New("reviews unavailable")
	appointments.err = errors.New("appointments unavailable")

	data, err := svc.Dashboard(context.Background(), "clinic-1")
	require.NoError(t, err, "section failures degrade, they do not abort")
	assert.Equal(t, "Ayur Wellness", data.Clinic.Name)
	assert.Empty(t, data.Appointments)
	assert.Empty(t, data.Reviews)
}

func TestDashboardUnknownClinic(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Dashboard(context.Background(), "missing")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAddSlotRejectsDuplicates(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	store.byID["clinic-1"] = &models.Clinic{
		ID:        "clinic-1",
		TimeSlots: []models.TimeSlot{{Label: "10:00 AM", Available: true}},
	}

	_, err := svc.AddSlot("clinic-1", "10:00 AM")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	clinic, err := svc.AddSlot("clinic-1", "2:00 PM")
	require.NoError(t, err)
	assert.Len(t, clinic.TimeSlots, 2)
}

func TestToggleSlotFlipsAvailability(t *testing.T) {
	svc, store, _, _, _ := newTestService()
	store.byID["clinic-1"] = &models.Clinic{
		ID:        "clinic-1",
		TimeSlots: []models.TimeSlot{{Label: "10:00 AM", Available: true}},
	}

	clinic, err := svc.ToggleSlot("clinic-1", "10:00 AM")
	require.NoError(t, err)
	assert.False(t, clinic.TimeSlots[0].Available)

	clinic, err = svc.ToggleSlot("clinic-1", "10:00 AM")
	require.NoError(t, err)
	assert.True(t, clinic.TimeSlots[0].Available)

	_, err = svc.ToggleSlot("clinic-1", "nope")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
