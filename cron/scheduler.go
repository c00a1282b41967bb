package cron

import (
	"errors"
	"time"

	"ayursutra/models"
	"ayursutra/services/tasks"
	"ayursutra/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// reminderLeadTime is how far before the appointment day the reminder fires.
const reminderLeadTime = 12 * time.Hour

// AppointmentLister reads the appointments scheduled for a calendar date.
type AppointmentLister interface {
	ListByDate(date string) ([]models.Appointment, error)
}

// StartReminderScheduler sweeps tomorrow's appointments once a day and
// enqueues a reminder task for each.
func StartReminderScheduler(appointments AppointmentLister) {
	client := asynq.NewClient(queueRedisOpts())

	go func() {
		for {
			sweepReminders(client, appointments)
			time.Sleep(24 * time.Hour)
		}
	}()
}

func sweepReminders(client *asynq.Client, appointments AppointmentLister) {
	logger := utils.GetLogger()

	tomorrow := time.Now().Add(24 * time.Hour)
	date := tomorrow.Format(dateLayout)

	upcoming, err := appointments.ListByDate(date)
	if err != nil {
		logger.Error("failed to list appointments for reminders",
			zap.String("date", date), zap.Error(err))
		return
	}

	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	fireAt := dayStart.Add(-reminderLeadTime)

	for _, appt := range upcoming {
		task, opts, err := tasks.NewReminderTask(tasks.ReminderPayload{
			AppointmentID: appt.ID,
			ClinicID:      appt.ClinicID,
			UserName:      appt.UserName,
			Slot:          appt.Slot,
			Date:          appt.Date,
		}, fireAt)
		if err != nil {
			logger.Error("failed to build reminder task",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		// TaskID keyed by appointment makes the daily sweep idempotent.
		opts = append(opts, asynq.TaskID("reminder-"+appt.ID))
		if _, err := client.Enqueue(task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Error("failed to enqueue reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	logger.Info("reminder sweep complete",
		zap.String("date", date), zap.Int("appointments", len(upcoming)))
}
