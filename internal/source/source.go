package source

import (
	"context"
	"errors"
)

// Tables served by the record source.
const (
	TableEvents    = "Event"
	TableDonations = "Donation"
	TableAlumni    = "Alumni"
)

// ErrUnavailable is returned when a table cannot be fetched, typically
// because the backing file is missing. Callers treat it as a degraded run,
// not a fatal error.
var ErrUnavailable = errors.New("record source unavailable")

// Row is one normalized record: field name to raw string value.
type Row map[string]string

// Source provides the authoritative tabular data (events, donations, alumni
// roster) consumed by the rule evaluators.
type Source interface {
	// Fetch returns all rows of the named table. Rows where every field is
	// empty are filtered out. Results are not cached across calls.
	Fetch(ctx context.Context, table string) ([]Row, error)
}
