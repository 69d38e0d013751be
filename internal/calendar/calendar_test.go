package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
)

func TestDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2024, 3, 15, 23, 30, 0, 0, ist)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), calendar.Day(in))
}

func TestFirstOfMonth(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		calendar.FirstOfMonth(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
		calendar.AddDays(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), -7))
}

func TestParse(t *testing.T) {
	d, err := calendar.Parse("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", calendar.Format(d))

	_, err = calendar.Parse("31-01-2024")
	assert.Error(t, err)
}
