package schedule

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

func TestFormatWeeklyUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	out, err := svc.FormatWeekly(context.Background(), 999)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "timezone: not set", lines[0])
	for i, d := range domain.DayKeys {
		assert.Equal(t, string(d)+": none", lines[i+1])
	}
}

func TestFormatWeeklyWithTimezoneAndSlots(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "America/Los_Angeles")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Friday, "18:00", "22:00"))

	out, err := svc.FormatWeekly(ctx, testUser)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "timezone: America/Los_Angeles", lines[0])
	assert.Contains(t, lines, "fri: 18:00-22:00")
	assert.Contains(t, lines, "mon: none")
}

func TestFormatWeeklyMultipleSlots(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Saturday, "10:00", "12:00"))
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Saturday, "20:00", "23:00"))

	out, err := svc.FormatWeekly(ctx, testUser)
	require.NoError(t, err)
	assert.Contains(t, out, "sat: 10:00-12:00, 20:00-23:00")
}
