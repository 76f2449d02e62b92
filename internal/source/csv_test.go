package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, dir, table, content string) {
	t.Helper()
	path := filepath.Join(dir, table+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCSVSourceFetch(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, TableEvents,
		"EventID,EventName,EventDate\nE1,Homecoming,2026-09-05\nE2, Career Night ,2026-09-12\n")

	rows, err := NewCSVSource(dir).Fetch(context.Background(), TableEvents)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Homecoming", rows[0]["EventName"])
	assert.Equal(t, "Career Night", rows[1]["EventName"], "fields are trimmed")
	assert.Equal(t, "E2", rows[1]["EventID"])
}

func TestCSVSourceFiltersEmptyRows(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, TableDonations,
		"AlumniID,DonationAmount\n,,\nA1,100\n , \n")

	rows, err := NewCSVSource(dir).Fetch(context.Background(), TableDonations)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0]["AlumniID"])
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := NewCSVSource(t.TempDir()).Fetch(context.Background(), TableAlumni)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCSVSourceRaggedRecords(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, TableAlumni,
		"AlumniID,Email,GradYear\nA1,a@example.com\nA2,b@example.com,2015,extra\n")

	rows, err := NewCSVSource(dir).Fetch(context.Background(), TableAlumni)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a@example.com", rows[0]["Email"])
	assert.Equal(t, "", rows[0]["GradYear"])
	assert.Equal(t, "2015", rows[1]["GradYear"])
}

func TestCSVSourceEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, TableEvents, "")

	rows, err := NewCSVSource(dir).Fetch(context.Background(), TableEvents)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
