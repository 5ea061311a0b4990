package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("mon")
	require.NoError(t, err)
	assert.Equal(t, Monday, d)

	d, err = ParseWeekday(" FRI ")
	require.NoError(t, err)
	assert.Equal(t, Friday, d)

	_, err = ParseWeekday("monday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = ParseWeekday("")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWeekdayNextPrev(t *testing.T) {
	assert.Equal(t, Saturday, Friday.Next())
	assert.Equal(t, Monday, Sunday.Next())
	assert.Equal(t, Sunday, Monday.Prev())
	assert.Equal(t, Thursday, Friday.Prev())
}

func TestWeekdayOf(t *testing.T) {
	// 2026-02-19 is a Thursday, 2026-02-22 a Sunday.
	thu := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	sun := time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, Thursday, WeekdayOf(thu))
	assert.Equal(t, Sunday, WeekdayOf(sun))
	assert.Equal(t, Monday, WeekdayOf(sun.AddDate(0, 0, 1)))
}
