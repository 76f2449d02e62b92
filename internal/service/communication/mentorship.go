package communication

import (
	"context"
	"encoding/json"

	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/model"
)

const mentorOfferID = "mentorship-offer-reminder"

// evaluateMentorship produces one of two fixed messages: an "offers
// available" prompt when the global offer list is non-empty (falling back
// to the legacy per-user offer map), otherwise a recruitment prompt. Like
// the donation singleton, it always resets to unread.
func (s *Service) evaluateMentorship(ctx context.Context) ([]candidate, error) {
	hasOffers := s.globalOfferCount(ctx) > 0 || s.legacyOfferCount(ctx) > 0

	if hasOffers {
		return []candidate{{
			ID:       mentorOfferID,
			Subject:  "Mentors are ready to help",
			Body:     "New mentor availability has been logged this week. Submit a mentorship request or connect with a new mentee today.",
			Category: model.CategoryMentorship,
			Reset:    true,
		}}, nil
	}
	return []candidate{{
		ID:       mentorOfferID,
		Subject:  "Become a founding mentor",
		Body:     "Be among the first mentors in the network. Share your focus area on the Mentorship page to help newer alumni thrive.",
		Category: model.CategoryMentorship,
		Reset:    true,
	}}, nil
}

func (s *Service) globalOfferCount(ctx context.Context) int {
	raw, ok, err := s.kv.Get(ctx, kvstore.KeyMentorOffersAll)
	if err != nil || !ok {
		return 0
	}
	var offers []model.MentorOffer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		s.logger.Warn("discarding corrupted mentor offer list", "error", err.Error())
		return 0
	}
	return len(offers)
}

// legacyOfferCount reads the older per-mentor flag map kept for
// compatibility with data written before the global list existed.
func (s *Service) legacyOfferCount(ctx context.Context) int {
	raw, ok, err := s.kv.Get(ctx, kvstore.KeyMentorOffers)
	if err != nil || !ok {
		return 0
	}
	var offers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		s.logger.Warn("discarding corrupted legacy mentor offer map", "error", err.Error())
		return 0
	}
	return len(offers)
}
