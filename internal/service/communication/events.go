package communication

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/source"
)

const (
	reminderWindow = 14 * 24 * time.Hour
	reminderCap    = 3
)

// evaluateEvents builds reminder candidates for events starting within the
// next two weeks, soonest first, at most three. Events with unparsable
// dates are dropped silently.
func (s *Service) evaluateEvents(ctx context.Context) ([]candidate, error) {
	rows, err := s.src.Fetch(ctx, source.TableEvents)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	now := s.clock.Now()
	cutoff := now.Add(reminderWindow)

	type upcoming struct {
		row  source.Row
		date time.Time
	}
	var matches []upcoming
	for _, row := range rows {
		d, ok := parseEventDate(row["EventDate"], now.Location())
		if !ok {
			continue
		}
		if d.Before(now) || d.After(cutoff) {
			continue
		}
		matches = append(matches, upcoming{row: row, date: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].date.Before(matches[j].date)
	})
	if len(matches) > reminderCap {
		matches = matches[:reminderCap]
	}

	cands := make([]candidate, 0, len(matches))
	for _, m := range matches {
		name := m.row["EventName"]
		id := m.row["EventID"]
		if id == "" {
			id = name + "-" + m.row["EventDate"]
		}

		displayName := name
		if displayName == "" {
			displayName = "Alumni Event"
		}
		bodyName := name
		if bodyName == "" {
			bodyName = "this alumni event"
		}
		location := ""
		if loc := m.row["Location"]; loc != "" {
			location = " at " + loc
		}

		cands = append(cands, candidate{
			ID:      "event-" + id,
			Subject: "Upcoming Event: " + displayName,
			Body: fmt.Sprintf("Don't miss %s on %s%s. Tap \"Events\" to confirm your spot.",
				bodyName, m.date.Format("January 2"), location),
			Category: model.CategoryEvents,
		})
	}
	return cands, nil
}

// parseEventDate accepts ISO-style dates and the month/day/year slash
// format found in older exports.
func parseEventDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if d, err := time.ParseInLocation(layout, value, loc); err == nil {
			return d, true
		}
	}

	parts := strings.Split(value, "/")
	if len(parts) == 3 {
		month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		day, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 == nil && err2 == nil && err3 == nil && month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}
