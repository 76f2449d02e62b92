package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a free-form message submitted by a user.
type Feedback struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Message     string    `db:"message" json:"message"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}
