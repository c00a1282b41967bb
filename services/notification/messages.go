package notification

import (
	"fmt"
	"strings"

	"ayursutra/models"
)

// BookingSubject is the subject line for new booking submissions.
const BookingSubject = "New Therapy Booking"

// ReminderSubject is the subject line for next-day appointment reminders.
const ReminderSubject = "Appointment Reminder"

// BookingMessage renders a booking submission as the plain-text body the
// relay forwards to the clinic mailbox.
func BookingMessage(b models.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking Details:\n")
	fmt.Fprintf(&sb, "Clinic: %s\n", b.ClinicName)
	fmt.Fprintf(&sb, "Therapy: %s\n", b.Therapy)
	fmt.Fprintf(&sb, "Time Slot: %s\n", b.Slot)
	fmt.Fprintf(&sb, "Patient Email: %s\n", b.Email)
	if b.Rating > 0 {
		fmt.Fprintf(&sb, "Rating: %d/5\n", b.Rating)
	}
	return sb.String()
}

// ReminderMessage renders a next-day appointment reminder.
func ReminderMessage(a models.Appointment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Upcoming Appointment:\n")
	fmt.Fprintf(&sb, "Patient: %s\n", a.UserName)
	fmt.Fprintf(&sb, "Date: %s\n", a.Date)
	fmt.Fprintf(&sb, "Time Slot: %s\n", a.Slot)
	return sb.String()
}
