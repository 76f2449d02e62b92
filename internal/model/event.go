package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is an alumni event. Date is kept as the raw source string since
// upstream data mixes ISO and m/d/y slash formats; parsing is tolerant at
// the point of use.
type Event struct {
	Base
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description,omitempty"`
	Location    string `db:"location" json:"location,omitempty"`
	Date        string `db:"date" json:"date"`
	Image       string `db:"image" json:"image,omitempty"`
}

// EventRegistration links a user to an event.
type EventRegistration struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	EventID      uuid.UUID `db:"event_id" json:"event_id"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// RegisteredEvent is an event joined with the caller's registration row.
type RegisteredEvent struct {
	Event
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}
