package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusRetry     OutboxStatus = "retry"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// Domain event types published through the outbox.
const (
	EventTypeDonationRecorded       = "DONATION_RECORDED"
	EventTypeEventRegistration      = "EVENT_REGISTRATION_CREATED"
	EventTypeMentorRequestCreated   = "MENTOR_REQUEST_CREATED"
	EventTypeMentorOfferPublished   = "MENTOR_OFFER_PUBLISHED"
	EventTypeFeedbackSubmitted      = "FEEDBACK_SUBMITTED"
	EventTypeCommunicationsGenerate = "COMMUNICATIONS_GENERATED"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       string          `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	RetryAt      *time.Time      `db:"retry_at" json:"retry_at,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}
