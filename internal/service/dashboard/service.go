package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

const statsTTL = 60 * time.Second

// Service computes per-user engagement stats. Results are cached briefly
// since the dashboard polls.
type Service struct {
	eventRepo    repository.EventRepository
	mentorRepo   repository.MentorRepository
	donationRepo repository.DonationRepository
	cache        *cache.Cache
}

func NewService(eventRepo repository.EventRepository, mentorRepo repository.MentorRepository, donationRepo repository.DonationRepository) *Service {
	return &Service{
		eventRepo:    eventRepo,
		mentorRepo:   mentorRepo,
		donationRepo: donationRepo,
		cache:        cache.New(statsTTL, 5*time.Minute),
	}
}

func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(userID.String()); ok {
		return cached.(*model.DashboardStats), nil
	}

	events, err := s.eventRepo.CountRegistrations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	mentors, err := s.mentorRepo.CountRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count mentor requests: %w", err)
	}
	donated, err := s.donationRepo.SumByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}

	score := events*15 + mentors*10 + int(donated/10)
	if score > 100 {
		score = 100
	}

	stats := &model.DashboardStats{
		EngagementScore: score,
		EventsAttended:  events,
		MentorRequests:  mentors,
		TotalDonations:  donated,
	}
	s.cache.Set(userID.String(), stats, cache.DefaultExpiration)
	return stats, nil
}

// Invalidate drops the cached stats for a user after a write.
func (s *Service) Invalidate(userID uuid.UUID) {
	s.cache.Delete(userID.String())
}
