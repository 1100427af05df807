package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// AppointmentEventType represents the type of appointment event
type AppointmentEventType string

const (
	AppointmentEventTypeCreated AppointmentEventType = "appointment_created"
	AppointmentEventTypeUpdated AppointmentEventType = "appointment_updated"
	AppointmentEventTypeDeleted AppointmentEventType = "appointment_deleted"
)

// AppointmentEvent is a real-time notification for a collection mutation.
type AppointmentEvent struct {
	ID            string               `json:"id"`
	AppointmentID int64                `json:"appointment_id"`
	EventType     AppointmentEventType `json:"event_type"`
	Timestamp     time.Time            `json:"timestamp"`
	PatientName   string               `json:"patient_name,omitempty"`
	DoctorName    string               `json:"doctor_name,omitempty"`
}

// NewAppointmentEvent creates a new appointment event
func NewAppointmentEvent(appointmentID int64, eventType AppointmentEventType, patientName, doctorName string) *AppointmentEvent {
	return &AppointmentEvent{
		ID:            generateEventID(),
		AppointmentID: appointmentID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		PatientName:   patientName,
		DoctorName:    doctorName,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
