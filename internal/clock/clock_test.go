package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	c := NewFixed(time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestTodayFollowsCampusZone(t *testing.T) {
	// 01:00 on the 11th east of UTC is still the 10th in UTC
	east := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Today(NewFixed(time.Date(2025, 3, 11, 1, 0, 0, 0, east))))

	// 20:00 on the 10th west of UTC is already the 11th in UTC
	west := time.FixedZone("UTC-7", -7*60*60)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Today(NewFixed(time.Date(2025, 3, 10, 20, 0, 0, 0, west))))
}

func TestSystemClockUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	assert.Equal(t, loc, NewSystem(loc).Now().Location())
	assert.Equal(t, time.UTC, NewSystem(nil).Now().Location())
}
