package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ayursutra/config"
	"ayursutra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relayFor(t *testing.T, handler http.HandlerFunc) *RelayClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRelayClient(&config.Config{
		RelayEndpoint:  server.URL,
		RelayAccessKey: "key-123",
		RelayRecipient: "clinic@example.com",
	})
}

func TestRelaySendSubmitsFormFields(t *testing.T) {
	var got map[string]string
	client := relayFor(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = map[string]string{
			"access_key": r.PostFormValue("access_key"),
			"to":         r.PostFormValue("to"),
			"subject":    r.PostFormValue("subject"),
			"message":    r.PostFormValue("message"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "Email sent"}`))
	})

	err := client.Send(context.Background(), "New Therapy Booking", "Booking Details")
	require.NoError(t, err)
	assert.Equal(t, "key-123", got["access_key"])
	assert.Equal(t, "clinic@example.com", got["to"])
	assert.Equal(t, "New Therapy Booking", got["subject"])
	assert.Equal(t, "Booking Details", got["message"])
}

func TestRelaySendSurfacesRejection(t *testing.T) {
	client := relayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "Invalid access key"}`))
	})

	err := client.Send(context.Background(), "subject", "message")
	assert.ErrorContains(t, err, "Invalid access key")
}

func TestRelaySendFailsWhenUnreachable(t *testing.T) {
	client := NewRelayClient(&config.Config{RelayEndpoint: "http://127.0.0.1:1"})
	err := client.Send(context.Background(), "subject", "message")
	assert.ErrorContains(t, err, "failed to reach relay")
}

func TestBookingMessageIncludesAllFields(t *testing.T) {
	msg := BookingMessage(models.Booking{
		ClinicName: "Ayur Wellness",
		Therapy:    "Abhyanga",
		Slot:       "10:00 AM",
		Email:      "patient@example.com",
		Rating:     4,
	})
	assert.Contains(t, msg, "Clinic: Ayur Wellness")
	assert.Contains(t, msg, "Therapy: Abhyanga")
	assert.Contains(t, msg, "Time Slot: 10:00 AM")
	assert.Contains(t, msg, "Patient Email: patient@example.com")
	assert.Contains(t, msg, "Rating: 4/5")
}

func TestBookingMessageOmitsZeroRating(t *testing.T) {
	msg := BookingMessage(models.Booking{ClinicName: "Ayur Wellness"})
	assert.NotContains(t, msg, "Rating:")
}
