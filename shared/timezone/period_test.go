package timezone_test

import (
	"rentdesk/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodBoundaries(t *testing.T) {
	timezone.SetLocation(time.UTC)

	// Wednesday
	ref := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), timezone.StartOfDay(ref))
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), timezone.StartOfWeek(ref))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), timezone.StartOfMonth(ref))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), timezone.StartOfYear(ref))
}

func TestStartOfWeekOnSunday(t *testing.T) {
	timezone.SetLocation(time.UTC)

	sunday := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), timezone.StartOfWeek(sunday))
}

func TestSameDayUsesAppLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	timezone.SetLocation(saoPaulo)
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	// 01:00 UTC is still the previous evening in UTC-3.
	a := time.Date(2024, time.March, 11, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 10, 20, 0, 0, 0, saoPaulo)

	assert.True(t, timezone.SameDay(a, b))
	assert.False(t, timezone.SameDay(a, b.AddDate(0, 0, 1)))
}
