package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameUTCDate_Boundaries(t *testing.T) {
	day, err := ParseDay("2025-01-13")
	require.NoError(t, err)

	tests := []struct {
		name string
		ts   string
		want bool
	}{
		{"start of day included", "2025-01-13T00:00:00Z", true},
		{"end of day included", "2025-01-13T23:59:59Z", true},
		{"midday included", "2025-01-13T10:00:00Z", true},
		{"last second of previous day excluded", "2025-01-12T23:59:59Z", false},
		{"first second of next day excluded", "2025-01-14T00:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := time.Parse(time.RFC3339, tt.ts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, SameUTCDate(ts, day))
		})
	}
}

func TestSameUTCDate_NonUTCTimestamp(t *testing.T) {
	day, err := ParseDay("2025-01-13")
	require.NoError(t, err)

	// 23:30 UTC on the 13th, expressed in a +02:00 offset.
	ts, err := time.Parse(time.RFC3339, "2025-01-14T01:30:00+02:00")
	require.NoError(t, err)

	assert.True(t, SameUTCDate(ts, day))
}

func TestParseDay_Invalid(t *testing.T) {
	_, err := ParseDay("13-01-2025")
	assert.Error(t, err)
}

func TestYesterday(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2025-01-14T00:30:00Z")
	require.NoError(t, err)

	got := Yesterday(now)
	assert.Equal(t, "2025-01-13", FormatDay(got))
	assert.Equal(t, time.UTC, got.Location())
}
