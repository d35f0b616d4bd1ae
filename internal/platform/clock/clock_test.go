package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termvault/fd_account_app/internal/platform/clock"
)

func TestAdjustable_FrozenUntilMoved(t *testing.T) {
	start := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	c := clock.NewAdjustable(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now(), "repeated reads must not drift")
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), c.Today())
}

func TestAdjustable_Advance(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	c := clock.NewAdjustable(start)

	c.Advance(36 * time.Hour)
	assert.Equal(t, start.Add(36*time.Hour), c.Now())
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), c.Today())

	c.AdvanceDays(30)
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), c.Today())
}

func TestAdjustable_Set(t *testing.T) {
	c := clock.NewAdjustable(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	target := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	c.Set(target)
	assert.Equal(t, target, c.Now())
}

func TestReal_TodayIsMidnightUTC(t *testing.T) {
	c := clock.NewReal()
	today := c.Today()
	require.Equal(t, 0, today.Hour())
	require.Equal(t, 0, today.Minute())
	require.Equal(t, time.UTC, today.Location())
	assert.False(t, c.Now().Before(today))
}
