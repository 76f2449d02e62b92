package model

import (
	"time"

	"github.com/google/uuid"
)

type MentorRequestStatus string

const (
	MentorRequestStatusPending  MentorRequestStatus = "pending"
	MentorRequestStatusAccepted MentorRequestStatus = "accepted"
	MentorRequestStatusDeclined MentorRequestStatus = "declined"
)

// Mentor is a listed alumni mentor.
type Mentor struct {
	Base
	Name    string `db:"name" json:"name"`
	Title   string `db:"title" json:"title,omitempty"`
	Company string `db:"company" json:"company,omitempty"`
	Image   string `db:"image" json:"image,omitempty"`
}

// MentorRequest is a user's request to be mentored.
type MentorRequest struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	UserID      uuid.UUID           `db:"user_id" json:"user_id"`
	MentorID    uuid.UUID           `db:"mentor_id" json:"mentor_id"`
	CareerField string              `db:"career_field" json:"career_field,omitempty"`
	GradYear    string              `db:"grad_year" json:"grad_year,omitempty"`
	Status      MentorRequestStatus `db:"status" json:"status"`
	RequestedAt time.Time           `db:"requested_at" json:"requested_at"`
}

// MentorRequestDetail joins a request with its mentor's display fields.
type MentorRequestDetail struct {
	MentorRequest
	MentorName    string `db:"mentor_name" json:"mentor_name"`
	MentorTitle   string `db:"mentor_title" json:"mentor_title,omitempty"`
	MentorCompany string `db:"mentor_company" json:"mentor_company,omitempty"`
}

// MentorOffer is an availability flag published by a mentor. Offers live in
// the key-value store and feed the mentorship rule evaluator.
type MentorOffer struct {
	Name      string    `json:"name"`
	FocusArea string    `json:"focus_area,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
