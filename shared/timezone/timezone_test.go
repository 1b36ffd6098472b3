package timezone_test

import (
	"rentdesk/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	require.NoError(t, timezone.Configure("America/Sao_Paulo"))
	assert.Equal(t, "America/Sao_Paulo", timezone.Location().String())
	assert.Equal(t, "America/Sao_Paulo", timezone.Now().Location().String())

	require.NoError(t, timezone.Configure(""))
	assert.Equal(t, time.UTC, timezone.Location())
}

func TestConfigureRejectsUnknownZone(t *testing.T) {
	timezone.SetLocation(time.UTC)

	assert.Error(t, timezone.Configure("Mars/Olympus_Mons"))
	assert.Equal(t, time.UTC, timezone.Location(), "a failed Configure keeps the previous zone")
}

func TestSetLocationIgnoresNil(t *testing.T) {
	timezone.SetLocation(time.UTC)
	timezone.SetLocation(nil)

	assert.Equal(t, time.UTC, timezone.Location())
}

func TestFormatUsesAppLocation(t *testing.T) {
	timezone.SetLocation(time.FixedZone("BRT", -3*60*60))
	t.Cleanup(func() { timezone.SetLocation(time.UTC) })

	noonUTC := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01 09:00", timezone.Format(noonUTC, "2006-01-02 15:04"))
	assert.Equal(t, 9, timezone.ToAppTime(noonUTC).Hour())
}
