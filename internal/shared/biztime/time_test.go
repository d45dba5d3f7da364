package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInBizTimezone(t *testing.T) {
	require.NoError(t, Init(""))

	// 17:00 UTC is already the next day in Asia/Jakarta (UTC+7).
	utc := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)

	assert.Equal(t, "06 Mar 2024", FormatInBizTimezone(utc, "02 Jan 2006"))
}

func TestNowUTC(t *testing.T) {
	now := NowUTC()

	assert.Equal(t, time.UTC, now.Location())
}
