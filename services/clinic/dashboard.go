package clinic

import (
	"context"
	"sync"

	"ayursutra/models"
	"ayursutra/utils"

	"go.uber.org/zap"
)

// DashboardData aggregates the three independent reads the clinic dashboard
// shows. Each section degrades on its own: a failed read leaves its section
// empty without blanking the others.
type DashboardData struct {
	Clinic       *models.Clinic       `json:"clinic"`
	Appointments []models.Appointment `json:"appointments"`
	Reviews      []models.Review      `json:"reviews"`
}

func (s *DefaultClinicService) Dashboard(ctx context.Context, clinicID string) (*DashboardData, error) {
	logger := utils.GetLogger()

	if clinicID == "" {
		return nil, &ValidationError{Message: "Clinic id is required"}
	}

	data := &DashboardData{
		Appointments: []models.Appointment{},
		Reviews:      []models.Review{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	notFound := false
	go func() {
		defer wg.Done()
		clinic, err := s.Clinics.GetByID(clinicID)
		if err != nil {
			logger.Error("failed to load clinic details",
				zap.String("clinicId", clinicID), zap.Error(err))
			return
		}
		if clinic == nil {
			notFound = true
			return
		}
		data.Clinic = clinic
	}()

	go func() {
		defer wg.Done()
		appointments, err := s.Appointments.ListByClinic(clinicID)
		if err != nil {
			logger.Error("failed to load appointments",
				zap.String("clinicId", clinicID), zap.Error(err))
			return
		}
		if appointments != nil {
			data.Appointments = appointments
		}
	}()

	go func() {
		defer wg.Done()
		reviews, err := s.Reviews.ListByClinic(clinicID)
		if err != nil {
			logger.Error("failed to load reviews",
				zap.String("clinicId", clinicID), zap.Error(err))
			return
		}
		if reviews != nil {
			data.Reviews = reviews
		}
	}()

	wg.Wait()

	if notFound {
		return nil, &ValidationError{Message: "Clinic not found"}
	}
	return data, nil
}
