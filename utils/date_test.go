package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("1969-07-16")
	require.NoError(t, err)
	assert.Equal(t, 1969, parsed.Year())
	assert.Equal(t, time.July, parsed.Month())
	assert.Equal(t, 16, parsed.Day())

	for _, bad := range []string{"16-07-1969", "1969/07/16", "1969-13-01", "not-a-date", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(1969, time.July, 24, 16, 50, 35, 0, time.UTC)
	assert.Equal(t, "1969-07-24", FormatDate(d))
}

func TestBeforeToday(t *testing.T) {
	now := time.Now()
	assert.True(t, BeforeToday(now.AddDate(0, 0, -1)))
	assert.False(t, BeforeToday(now.AddDate(0, 0, 1)))
	// later today is not "before today"
	assert.False(t, BeforeToday(now))
}
