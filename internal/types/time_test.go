package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindow(t *testing.T) {
	end := time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)

	months := MonthWindow(end, 3)
	assert.Equal(t, []time.Time{
		time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}, months)

	assert.Empty(t, MonthWindow(end, 0))
	assert.Equal(t, "Dec", MonthLabel(months[0]))
}

func TestStartOfMonthUsesUTC(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	local := time.Date(2024, time.March, 1, 1, 0, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(local))
}
