package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

func TestDayDisplay(t *testing.T) {
	assert.Equal(t, "Monday", dayDisplay(domain.Monday))
	assert.Equal(t, "Wednesday", dayDisplay(domain.Wednesday))
	assert.Equal(t, "Sunday", dayDisplay(domain.Sunday))
}

func TestWeekdayChoices(t *testing.T) {
	choices := weekdayChoices()
	require.Len(t, choices, 7)
	assert.Equal(t, "Monday", choices[0].Name)
	assert.Equal(t, "mon", choices[0].Value)
	assert.Equal(t, "Sunday", choices[6].Name)
	assert.Equal(t, "sun", choices[6].Value)
}

func TestFilterChoices(t *testing.T) {
	names := []string{"Chess", "Helldivers 2", "Valheim"}

	t.Run("No Filter", func(t *testing.T) {
		choices := filterChoices(names, "")
		require.Len(t, choices, 3)
		assert.Equal(t, "Chess", choices[0].Name)
		assert.Equal(t, "Chess", choices[0].Value)
	})

	t.Run("Case Insensitive Substring", func(t *testing.T) {
		choices := filterChoices(names, "hell")
		require.Len(t, choices, 1)
		assert.Equal(t, "Helldivers 2", choices[0].Name)
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Empty(t, filterChoices(names, "zzz"))
	})

	t.Run("Caps At 25", func(t *testing.T) {
		many := make([]string, 40)
		for i := range many {
			many[i] = "Game"
		}
		assert.Len(t, filterChoices(many, ""), 25)
	})
}
