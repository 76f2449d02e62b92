package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/source"
)

const (
	donationGoalID      = "donation-goal-reminder"
	defaultDonationGoal = 1000
)

// evaluateDonations compares the user's total giving (source-of-record
// rows plus local overrides) against their goal and produces the singleton
// goal message. The singleton always resets to unread so the prompt
// re-surfaces daily until resolved.
func (s *Service) evaluateDonations(ctx context.Context, email string) ([]candidate, error) {
	donations, err := s.src.Fetch(ctx, source.TableDonations)
	if err != nil {
		return nil, fmt.Errorf("fetching donations: %w", err)
	}
	alumni, err := s.src.Fetch(ctx, source.TableAlumni)
	if err != nil {
		return nil, fmt.Errorf("fetching alumni roster: %w", err)
	}

	var alumniID string
	for _, row := range alumni {
		if strings.ToLower(row["Email"]) == email {
			alumniID = row["AlumniID"]
			break
		}
	}

	var total float64
	if alumniID != "" {
		for _, row := range donations {
			if row["AlumniID"] == alumniID {
				total += parseAmount(row["DonationAmount"])
			}
		}
	}
	for _, entry := range s.loadLocalDonations(ctx, email) {
		total += parseAmount(entry.Amount)
	}

	goal := s.donationGoal(ctx, email)

	if total >= goal {
		return []candidate{{
			ID:       donationGoalID,
			Subject:  "You hit your annual giving goal!",
			Body:     "Phenomenal generosity - thank you for completing this year's goal. Consider setting a stretch target or supporting a new campaign.",
			Category: model.CategoryDonations,
			Reset:    true,
		}}, nil
	}

	remaining := goal - total
	return []candidate{{
		ID:       donationGoalID,
		Subject:  "Keep your giving goal on track",
		Body:     fmt.Sprintf("You're $%.2f away from your annual goal. A quick gift puts you right back on pace.", remaining),
		Category: model.CategoryDonations,
		Reset:    true,
	}}, nil
}

// loadLocalDonations reads the user's manual donation entries. Corrupted
// JSON is treated as an empty list.
func (s *Service) loadLocalDonations(ctx context.Context, email string) []model.LocalDonation {
	raw, ok, err := s.kv.Get(ctx, kvstore.NamespaceKey(kvstore.KeyLocalDonations, email))
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn("failed to load local donations", "email", email, "error", err.Error())
		}
		return nil
	}

	var entries []model.LocalDonation
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("discarding corrupted local donation list", "email", email, "error", err.Error())
		return nil
	}
	return entries
}

func (s *Service) donationGoal(ctx context.Context, email string) float64 {
	raw, ok, err := s.kv.Get(ctx, kvstore.NamespaceKey(kvstore.KeyDonationGoal, email))
	if err != nil || !ok {
		return defaultDonationGoal
	}
	goal, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || goal <= 0 {
		return defaultDonationGoal
	}
	return goal
}

// parseAmount coerces unparsable amounts to zero, never an error.
func parseAmount(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return v
}
