package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// FormatWeekly renders the weekly availability summary:
//
//	timezone: US/Eastern
//	mon: 10:00-12:00, 20:00-23:00
//	tue: none
//	...
//
// Output is deterministic: one line per day in mon..sun order, intervals
// in stored (start-ascending) order.
func (s *service) FormatWeekly(ctx context.Context, userID int64) (string, error) {
	tz, err := s.repo.GetTimezone(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get timezone: %w", err)
	}
	week, err := s.repo.GetWeek(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get weekly schedule: %w", err)
	}

	var b strings.Builder
	if tz != nil && *tz != "" {
		fmt.Fprintf(&b, "timezone: %s\n", *tz)
	} else {
		b.WriteString("timezone: not set\n")
	}

	for _, day := range domain.DayKeys {
		slots := week[day]
		if len(slots) == 0 {
			fmt.Fprintf(&b, "%s: none\n", day)
			continue
		}
		parts := make([]string, 0, len(slots))
		for _, iv := range slots {
			parts = append(parts, fmt.Sprintf("%s-%s", iv.Start, iv.End))
		}
		fmt.Fprintf(&b, "%s: %s\n", day, strings.Join(parts, ", "))
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
