package mentor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
)

type Service struct {
	repo repository.MentorRepository
	kv   kvstore.Store
}

func NewService(repo repository.MentorRepository, kv kvstore.Store) *Service {
	return &Service{repo: repo, kv: kv}
}

func (s *Service) List(ctx context.Context) ([]*model.Mentor, error) {
	mentors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	return mentors, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Mentor, error) {
	mentor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	return mentor, nil
}

type RequestInput struct {
	MentorID    uuid.UUID
	CareerField string
	GradYear    string
}

func (s *Service) CreateRequest(ctx context.Context, userID uuid.UUID, input RequestInput) (*model.MentorRequest, error) {
	if _, err := s.repo.Get(ctx, input.MentorID); err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}

	req := &model.MentorRequest{
		ID:          uuid.New(),
		UserID:      userID,
		MentorID:    input.MentorID,
		CareerField: input.CareerField,
		GradYear:    input.GradYear,
		Status:      model.MentorRequestStatusPending,
		RequestedAt: time.Now(),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create mentor request: %w", err)
	}
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, userID uuid.UUID) ([]*model.MentorRequestDetail, error) {
	reqs, err := s.repo.ListRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor requests: %w", err)
	}
	return reqs, nil
}

// RegisterOffer appends a mentor availability offer to the global offer
// list. The list feeds the mentorship notification rule for every user.
func (s *Service) RegisterOffer(ctx context.Context, offer model.MentorOffer) error {
	offer.CreatedAt = time.Now()

	offers, err := s.ListOffers(ctx)
	if err != nil {
		return err
	}
	offers = append(offers, offer)

	raw, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to encode mentor offers: %w", err)
	}
	if err := s.kv.Set(ctx, kvstore.KeyMentorOffersAll, string(raw)); err != nil {
		return fmt.Errorf("failed to store mentor offers: %w", err)
	}
	return nil
}

// ListOffers returns the global mentor offer list. A corrupted stored value
// is treated as an empty list.
func (s *Service) ListOffers(ctx context.Context) ([]model.MentorOffer, error) {
	raw, ok, err := s.kv.Get(ctx, kvstore.KeyMentorOffersAll)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor offers: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var offers []model.MentorOffer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		log.Warn().Err(err).Msg("discarding corrupted mentor offer list")
		return nil, nil
	}
	return offers, nil
}
