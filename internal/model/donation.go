package model

import (
	"time"

	"github.com/google/uuid"
)

// Donation is a recorded gift against a fund.
type Donation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Fund      string    `db:"fund" json:"fund"`
	Amount    float64   `db:"amount" json:"amount"`
	DonatedAt time.Time `db:"donated_at" json:"donated_at"`
}

// LocalDonation is a manual, user-scoped donation entry kept in the
// key-value store and merged with the source-of-record rows when the
// donation goal evaluator runs. Amount stays a string; unparsable values
// count as zero.
type LocalDonation struct {
	Amount string `json:"amount"`
	Date   string `json:"date,omitempty"`
}
