package model

import (
	"time"
)

// CommunicationCategory groups notifications by the rule that produced them.
type CommunicationCategory string

const (
	CategoryEvents     CommunicationCategory = "events"
	CategoryDonations  CommunicationCategory = "donations"
	CategoryMentorship CommunicationCategory = "mentorship"
)

// CommunicationStatus is the unified message lifecycle state. Dismissed is a
// tombstone: the entry stays in the stored list but is excluded from views.
type CommunicationStatus string

const (
	CommunicationUnread    CommunicationStatus = "unread"
	CommunicationRead      CommunicationStatus = "read"
	CommunicationDismissed CommunicationStatus = "dismissed"
)

// Communication is one generated in-app notification. ID is deterministic
// per logical notification slot (event-<id>, donation-goal-reminder,
// mentorship-offer-reminder) so regeneration updates rather than duplicates.
type Communication struct {
	ID       string                `json:"id"`
	Subject  string                `json:"subject"`
	Body     string                `json:"body"`
	Category CommunicationCategory `json:"category"`
	Status   CommunicationStatus   `json:"status"`
	Date     time.Time             `json:"date"`
}

// Read reports whether the message has been read. Dismissed messages count
// as read for display purposes.
func (c Communication) Read() bool {
	return c.Status != CommunicationUnread
}
