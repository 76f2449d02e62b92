package kvstore

import (
	"context"
	"strings"
)

// Store is a durable string key-value store. It backs per-user state that
// does not belong in the relational schema: the generated communications
// list, the last-run watermark, local donation overrides, donation goals and
// mentor offer flags.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Key categories. Global categories are used with an empty email.
const (
	KeyCommunications  = "communications"
	KeyLastRun         = "communications:lastRun"
	KeyLocalDonations  = "localDonations"
	KeyDonationGoal    = "donationGoal"
	KeyMentorOffers    = "mentorOffers"
	KeyMentorOffersAll = "mentorOffersGlobal"
)

// AnonymousUser is the namespace fallback for an empty email.
const AnonymousUser = "anonymous"

// NormalizeEmail lowercases and trims an email; empty maps to the
// anonymous namespace.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AnonymousUser
	}
	return email
}

// NamespaceKey builds the storage key for a per-user category. Global
// categories (mentor offers) are used as bare keys without this helper.
func NamespaceKey(category, email string) string {
	return category + ":" + NormalizeEmail(email)
}
