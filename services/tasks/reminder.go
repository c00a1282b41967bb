package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderPayload carries everything the worker needs to build the reminder
// message without another database read.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClinicID      string `json:"clinicId"`
	UserName      string `json:"userName"`
	Slot          string `json:"slot"`
	Date          string `json:"date"`
}

func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
