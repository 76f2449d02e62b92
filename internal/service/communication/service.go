package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/source"
	"github.com/alumnihub/portal-api/pkg/logger"
	"github.com/alumnihub/portal-api/pkg/metrics"
)

const watermarkLayout = "2006-01-02"

// candidate is one notification produced by a rule evaluator. Reset forces
// the stored entry back to unread on upsert; without it an existing entry
// keeps its status.
type candidate struct {
	ID       string
	Subject  string
	Body     string
	Category model.CommunicationCategory
	Reset    bool
}

// Service is the message store and merge engine. It runs the rule
// evaluators at most once per user per calendar day and maintains the
// per-user message list in the key-value store.
type Service struct {
	kv      kvstore.Store
	src     source.Source
	clock   Clock
	metrics *metrics.Metrics
	logger  *logger.Logger

	// one lock per user so concurrent Generate calls for the same email
	// serialize. Cross-process callers still race on the watermark; last
	// writer wins.
	userLocks sync.Map
}

func NewService(kv kvstore.Store, src source.Source, clock Clock, m *metrics.Metrics, log *logger.Logger) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &Service{
		kv:      kv,
		src:     src,
		clock:   clock,
		metrics: m,
		logger:  log,
	}
}

// Generate runs the rule evaluators for a user and persists the merged
// message list. It is a no-op returning the stored list when the daily
// watermark already matches today. Evaluator failures degrade to fewer
// notifications; they never fail the pass.
func (s *Service) Generate(ctx context.Context, email string) ([]model.Communication, error) {
	email = normalizeEmail(email)

	lock := s.lockFor(email)
	lock.Lock()
	defer lock.Unlock()

	today := s.clock.Now().Format(watermarkLayout)
	watermarkKey := kvstore.NamespaceKey(kvstore.KeyLastRun, email)

	lastRun, _, err := s.kv.Get(ctx, watermarkKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation watermark: %w", err)
	}
	if lastRun == today {
		if s.metrics != nil {
			s.metrics.GenerationSkipped.Inc()
		}
		return s.loadList(ctx, email)
	}

	timer := s.clock.Now()
	list, err := s.loadList(ctx, email)
	if err != nil {
		return nil, err
	}

	// Event and donation evaluators have no data dependency and run
	// concurrently; the list mutex serializes their upserts. Mentorship
	// runs after, matching the pipeline order of the evaluators.
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	apply := func(category model.CommunicationCategory, cands []candidate, err error) {
		if err != nil {
			s.evaluatorFailed(category, err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		for _, c := range cands {
			list = s.upsert(list, c)
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		cands, err := s.evaluateEvents(ctx)
		apply(model.CategoryEvents, cands, err)
	}()
	go func() {
		defer wg.Done()
		cands, err := s.evaluateDonations(ctx, email)
		apply(model.CategoryDonations, cands, err)
	}()
	wg.Wait()

	cands, err := s.evaluateMentorship(ctx)
	apply(model.CategoryMentorship, cands, err)

	if err := s.saveList(ctx, email, list); err != nil {
		if s.metrics != nil {
			s.metrics.GenerationRuns.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if err := s.kv.Set(ctx, watermarkKey, today); err != nil {
		return nil, fmt.Errorf("failed to advance generation watermark: %w", err)
	}

	if s.metrics != nil {
		s.metrics.GenerationRuns.WithLabelValues("success").Inc()
		s.metrics.GenerationDuration.Observe(s.clock.Now().Sub(timer).Seconds())
	}

	return s.loadList(ctx, email)
}

// upsert merges a candidate into the list by id. Existing entries keep
// their status unless the candidate resets it; new entries start unread.
// List order is insertion order.
func (s *Service) upsert(list []model.Communication, c candidate) []model.Communication {
	now := s.clock.Now()
	for i := range list {
		if list[i].ID == c.ID {
			list[i].Subject = c.Subject
			list[i].Body = c.Body
			list[i].Category = c.Category
			list[i].Date = now
			if c.Reset {
				list[i].Status = model.CommunicationUnread
			}
			return list
		}
	}
	return append(list, model.Communication{
		ID:       c.ID,
		Subject:  c.Subject,
		Body:     c.Body,
		Category: c.Category,
		Status:   model.CommunicationUnread,
		Date:     now,
	})
}

// ListOptions filter the presentation view of the message list.
type ListOptions struct {
	UnreadOnly bool
	Limit      int
}

// List returns the user's messages newest first, excluding dismissed
// tombstones.
func (s *Service) List(ctx context.Context, email string, opts ListOptions) ([]model.Communication, error) {
	email = normalizeEmail(email)

	list, err := s.loadList(ctx, email)
	if err != nil {
		return nil, err
	}

	visible := make([]model.Communication, 0, len(list))
	for _, c := range list {
		if c.Status == model.CommunicationDismissed {
			continue
		}
		if opts.UnreadOnly && c.Status != model.CommunicationUnread {
			continue
		}
		visible = append(visible, c)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date.After(visible[j].Date)
	})

	if opts.Limit > 0 && len(visible) > opts.Limit {
		visible = visible[:opts.Limit]
	}
	return visible, nil
}

// MarkRead toggles a message between read and unread. A missing id is a
// no-op, not an error.
func (s *Service) MarkRead(ctx context.Context, email, id string, read bool) ([]model.Communication, error) {
	return s.setStatus(ctx, email, id, func(c *model.Communication) {
		if read {
			c.Status = model.CommunicationRead
		} else {
			c.Status = model.CommunicationUnread
		}
	})
}

// Dismiss tombstones a message. The entry stays in the stored list but is
// excluded from views. Regeneration leaves the tombstone alone for event
// reminders; the donation and mentorship singletons re-surface as unread
// on the next pass. A missing id is a no-op.
func (s *Service) Dismiss(ctx context.Context, email, id string) ([]model.Communication, error) {
	return s.setStatus(ctx, email, id, func(c *model.Communication) {
		c.Status = model.CommunicationDismissed
	})
}

func (s *Service) setStatus(ctx context.Context, email, id string, mutate func(*model.Communication)) ([]model.Communication, error) {
	email = normalizeEmail(email)

	lock := s.lockFor(email)
	lock.Lock()
	defer lock.Unlock()

	list, err := s.loadList(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			mutate(&list[i])
			if err := s.saveList(ctx, email, list); err != nil {
				return nil, err
			}
			break
		}
	}
	return list, nil
}

// AddLocalDonation appends a manual donation entry to the user's override
// list. Entries are merged with source-of-record rows by the donation goal
// evaluator.
func (s *Service) AddLocalDonation(ctx context.Context, email string, entry model.LocalDonation) error {
	email = normalizeEmail(email)
	key := kvstore.NamespaceKey(kvstore.KeyLocalDonations, email)

	entries := s.loadLocalDonations(ctx, email)
	entries = append(entries, entry)

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode local donations: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to store local donations: %w", err)
	}
	return nil
}

// SetDonationGoal stores the user's annual giving goal.
func (s *Service) SetDonationGoal(ctx context.Context, email string, goal float64) error {
	if goal <= 0 {
		return fmt.Errorf("donation goal must be positive")
	}
	email = normalizeEmail(email)
	key := kvstore.NamespaceKey(kvstore.KeyDonationGoal, email)
	if err := s.kv.Set(ctx, key, fmt.Sprintf("%g", goal)); err != nil {
		return fmt.Errorf("failed to store donation goal: %w", err)
	}
	return nil
}

func (s *Service) lockFor(email string) *sync.Mutex {
	v, _ := s.userLocks.LoadOrStore(email, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// loadList reads the stored message list. Corrupted JSON is treated as an
// empty list with a warning.
func (s *Service) loadList(ctx context.Context, email string) ([]model.Communication, error) {
	raw, ok, err := s.kv.Get(ctx, kvstore.NamespaceKey(kvstore.KeyCommunications, email))
	if err != nil {
		return nil, fmt.Errorf("failed to load communications: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var list []model.Communication
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("discarding corrupted communications list", "email", email, "error", err.Error())
		return nil, nil
	}
	return list, nil
}

func (s *Service) saveList(ctx context.Context, email string, list []model.Communication) error {
	if list == nil {
		list = []model.Communication{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode communications: %w", err)
	}
	if err := s.kv.Set(ctx, kvstore.NamespaceKey(kvstore.KeyCommunications, email), string(raw)); err != nil {
		return fmt.Errorf("failed to store communications: %w", err)
	}
	return nil
}

func (s *Service) evaluatorFailed(category model.CommunicationCategory, err error) {
	s.logger.Warn("rule evaluator failed", "category", string(category), "error", err.Error())
	if s.metrics != nil {
		s.metrics.EvaluatorFailures.WithLabelValues(string(category)).Inc()
	}
}

func normalizeEmail(email string) string {
	return kvstore.NormalizeEmail(email)
}
