package timemath

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursBetween(t *testing.T) {
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	hours, err := HoursBetween(start, start.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "9", hours.String())

	hours, err = HoursBetween(start, start.Add(10*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "10.5", hours.String())

	// 1 minute = 0.02 hours after rounding
	hours, err = HoursBetween(start, start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "0.02", hours.String())
}

func TestHoursBetween_InvalidRange(t *testing.T) {
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	_, err := HoursBetween(start, start.Add(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestInclusiveDayCount(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	days, err := InclusiveDayCount(start, start)
	require.NoError(t, err)
	assert.Equal(t, "1", days.String())

	days, err = InclusiveDayCount(start, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "3", days.String())

	_, err = InclusiveDayCount(start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, "0", ClampNonNegative(decimal.NewFromFloat(-2.5)).String())
	assert.Equal(t, "3.25", ClampNonNegative(decimal.NewFromFloat(3.25)).String())
	assert.Equal(t, "0", ClampNonNegative(decimal.Zero).String())
}
