package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-api/internal/kvstore"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/source"
	"github.com/alumnihub/portal-api/pkg/logger"
)

const testEmail = "jordan.avery@example.com"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeSource struct {
	tables map[string][]source.Row
	err    error
}

func (f *fakeSource) Fetch(_ context.Context, table string) ([]source.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tables[table], nil
}

func newTestService(src source.Source, clock Clock) (*Service, *kvstore.MemoryStore) {
	kv := kvstore.NewMemoryStore()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(kv, src, clock, nil, log), kv
}

func eventRow(id, name, date string) source.Row {
	return source.Row{"EventID": id, "EventName": name, "EventDate": date, "Location": "Alumni Hall"}
}

func alumniTable() []source.Row {
	return []source.Row{
		{"AlumniID": "A001", "Email": "Jordan.Avery@Example.com"},
		{"AlumniID": "A002", "Email": "sam.okafor@example.com"},
	}
}

func findByID(list []model.Communication, id string) *model.Communication {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func TestGenerateSameDayShortCircuits(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{tables: map[string][]source.Row{
		source.TableEvents: {eventRow("E1", "Homecoming", "2026-03-15")},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	first, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Underlying data changes, but the watermark gates recomputation.
	src.tables[source.TableEvents] = append(src.tables[source.TableEvents],
		eventRow("E2", "Career Night", "2026-03-18"))

	second, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Nil(t, findByID(second, "event-E2"))
}

func TestUpsertPreservesReadForEvents(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{tables: map[string][]source.Row{
		source.TableEvents: {eventRow("E1", "Homecoming", "2026-03-15")},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	first, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)
	require.NotNil(t, findByID(first, "event-E1"))

	_, err = svc.MarkRead(context.Background(), testEmail, "event-E1", true)
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), testEmail, donationGoalID, true)
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), testEmail, mentorOfferID, true)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	second, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	assert.Equal(t, model.CommunicationRead, findByID(second, "event-E1").Status,
		"event reminders keep their read state across regeneration")
	assert.Equal(t, model.CommunicationUnread, findByID(second, donationGoalID).Status,
		"donation singleton resets to unread")
	assert.Equal(t, model.CommunicationUnread, findByID(second, mentorOfferID).Status,
		"mentorship singleton resets to unread")
}

func TestEventWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}

	atBoundary := now.Add(14 * 24 * time.Hour).Format(time.RFC3339)
	pastBoundary := now.Add(14*24*time.Hour + time.Second).Format(time.RFC3339)

	src := &fakeSource{tables: map[string][]source.Row{
		source.TableEvents: {
			eventRow("IN", "At Boundary", atBoundary),
			eventRow("OUT", "Past Boundary", pastBoundary),
			eventRow("BAD", "Unparsable", "soonish"),
		},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	list, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	assert.NotNil(t, findByID(list, "event-IN"), "event exactly 14 days out is included")
	assert.Nil(t, findByID(list, "event-OUT"), "event past 14 days is excluded")
	assert.Nil(t, findByID(list, "event-BAD"), "unparsable dates are dropped silently")
}

func TestEventReminderCap(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}

	var rows []source.Row
	for i := 5; i >= 1; i-- {
		date := now.Add(time.Duration(i) * 24 * time.Hour).Format(time.RFC3339)
		rows = append(rows, eventRow(fmt.Sprintf("E%d", i), fmt.Sprintf("Event %d", i), date))
	}

	src := &fakeSource{tables: map[string][]source.Row{
		source.TableEvents: rows,
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	list, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	var eventMsgs []model.Communication
	for _, c := range list {
		if c.Category == model.CategoryEvents {
			eventMsgs = append(eventMsgs, c)
		}
	}
	require.Len(t, eventMsgs, 3, "at most three reminders per pass")
	assert.NotNil(t, findByID(list, "event-E1"))
	assert.NotNil(t, findByID(list, "event-E2"))
	assert.NotNil(t, findByID(list, "event-E3"))
	assert.Nil(t, findByID(list, "event-E4"))
	assert.Nil(t, findByID(list, "event-E5"))
}

func TestDonationGoalMath(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{tables: map[string][]source.Row{
		source.TableDonations: {
			{"AlumniID": "A001", "DonationAmount": "175.00"},
			{"AlumniID": "A001", "DonationAmount": "125.00"},
			{"AlumniID": "A002", "DonationAmount": "999.00"},
			{"AlumniID": "A001", "DonationAmount": "not-a-number"},
		},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	require.NoError(t, svc.AddLocalDonation(context.Background(), testEmail, model.LocalDonation{Amount: "120.50"}))
	require.NoError(t, svc.AddLocalDonation(context.Background(), testEmail, model.LocalDonation{Amount: "79.50"}))

	list, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	msg := findByID(list, donationGoalID)
	require.NotNil(t, msg)
	assert.Equal(t, "Keep your giving goal on track", msg.Subject)
	assert.Contains(t, msg.Body, "$500.00", "source 300 + local 200 against default goal 1000")
}

func TestDonationGoalMet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{tables: map[string][]source.Row{
		source.TableDonations: {
			{"AlumniID": "A001", "DonationAmount": "400.00"},
		},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	require.NoError(t, svc.SetDonationGoal(context.Background(), testEmail, 500))
	require.NoError(t, svc.AddLocalDonation(context.Background(), testEmail, model.LocalDonation{Amount: "150"}))

	list, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	msg := findByID(list, donationGoalID)
	require.NotNil(t, msg)
	assert.Equal(t, "You hit your annual giving goal!", msg.Subject)
}

func TestMentorshipFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("no offers anywhere", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
		svc, _ := newTestService(&fakeSource{}, clock)

		list, err := svc.Generate(ctx, testEmail)
		require.NoError(t, err)

		msg := findByID(list, mentorOfferID)
		require.NotNil(t, msg)
		assert.Equal(t, "Become a founding mentor", msg.Subject)
	})

	t.Run("global offer present", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
		svc, kv := newTestService(&fakeSource{}, clock)

		offers, _ := json.Marshal([]model.MentorOffer{{Name: "Sam Okafor", FocusArea: "Data"}})
		require.NoError(t, kv.Set(ctx, kvstore.KeyMentorOffersAll, string(offers)))

		list, err := svc.Generate(ctx, testEmail)
		require.NoError(t, err)

		msg := findByID(list, mentorOfferID)
		require.NotNil(t, msg)
		assert.Equal(t, "Mentors are ready to help", msg.Subject)
	})

	t.Run("legacy map fallback", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
		svc, kv := newTestService(&fakeSource{}, clock)

		require.NoError(t, kv.Set(ctx, kvstore.KeyMentorOffers, `{"sam.okafor@example.com": true}`))

		list, err := svc.Generate(ctx, testEmail)
		require.NoError(t, err)

		msg := findByID(list, mentorOfferID)
		require.NotNil(t, msg)
		assert.Equal(t, "Mentors are ready to help", msg.Subject)
	})
}

func TestMarkReadAndDismissMissingID(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc, _ := newTestService(&fakeSource{}, clock)

	before, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	afterRead, err := svc.MarkRead(context.Background(), testEmail, "no-such-id", true)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(afterRead))

	afterDismiss, err := svc.Dismiss(context.Background(), testEmail, "no-such-id")
	require.NoError(t, err)
	assert.Equal(t, len(before), len(afterDismiss))
}

func TestDismissTombstoneExcludedFromList(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{tables: map[string][]source.Row{
		source.TableEvents: {eventRow("E1", "Homecoming", "2026-03-15")},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	_, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	_, err = svc.Dismiss(context.Background(), testEmail, "event-E1")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), testEmail, ListOptions{})
	require.NoError(t, err)
	assert.Nil(t, findByID(list, "event-E1"))

	// The tombstone survives regeneration.
	clock.Advance(24 * time.Hour)
	_, err = svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	list, err = svc.List(context.Background(), testEmail, ListOptions{})
	require.NoError(t, err)
	assert.Nil(t, findByID(list, "event-E1"))
}

func TestListOptions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{tables: map[string][]source.Row{
		source.TableEvents: {
			eventRow("E1", "Homecoming", "2026-03-12"),
			eventRow("E2", "Career Night", "2026-03-20"),
		},
		source.TableAlumni: alumniTable(),
	}}
	svc, _ := newTestService(src, clock)

	_, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err)

	_, err = svc.MarkRead(context.Background(), testEmail, "event-E1", true)
	require.NoError(t, err)

	unread, err := svc.List(context.Background(), testEmail, ListOptions{UnreadOnly: true})
	require.NoError(t, err)
	assert.Nil(t, findByID(unread, "event-E1"))
	assert.NotNil(t, findByID(unread, "event-E2"))

	limited, err := svc.List(context.Background(), testEmail, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEvaluatorFailureIsolation(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	src := &fakeSource{err: fmt.Errorf("%w: data directory missing", source.ErrUnavailable)}
	svc, _ := newTestService(src, clock)

	list, err := svc.Generate(context.Background(), testEmail)
	require.NoError(t, err, "source failures degrade to fewer notifications")

	// Mentorship reads only the key-value store, so it still produced its
	// message; the event and donation categories stayed empty.
	assert.NotNil(t, findByID(list, mentorOfferID))
	assert.Nil(t, findByID(list, donationGoalID))
	for _, c := range list {
		assert.NotEqual(t, model.CategoryEvents, c.Category)
	}
}

func TestCorruptedStoreTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc, kv := newTestService(&fakeSource{}, clock)

	require.NoError(t, kv.Set(ctx, kvstore.NamespaceKey(kvstore.KeyCommunications, testEmail), "{not json"))

	list, err := svc.Generate(ctx, testEmail)
	require.NoError(t, err)
	assert.NotNil(t, findByID(list, mentorOfferID))
}
