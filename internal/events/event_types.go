package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserDeleted     EventType = "user_deleted"
	EventPurchaseCreated EventType = "purchase_created"
	EventContactReceived EventType = "contact_received"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh ID and the current time.
func NewEvent(eventType EventType, subject string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
}

// PurchaseCreatedPayload payload.
type PurchaseCreatedPayload struct {
	PurchaseID string `json:"purchase_id"`
	UserID     string `json:"user_id"`
	Total      int64  `json:"total"`
}

// ContactReceivedPayload payload.
type ContactReceivedPayload struct {
	MessageID string `json:"message_id"`
	Email     string `json:"email"`
	Preview   string `json:"preview"`
}
