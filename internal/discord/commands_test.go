package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestCommandRegistry_Register(t *testing.T) {
	registry := NewCommandRegistry()

	cmd, handler := PingCommand()
	registry.Register(cmd, handler)

	assert.Contains(t, registry.Commands, "ping")
	assert.Contains(t, registry.Handlers, "ping")
}

func TestCommandsEqual(t *testing.T) {
	base := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "add-game",
			Description: "Add a game to your list",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game",
					Description: "Name of the game",
					Required:    true,
				},
			},
		}
	}

	tests := []struct {
		name     string
		mutate   func(*discordgo.ApplicationCommand)
		expected bool
	}{
		{
			name:     "Identical",
			mutate:   func(c *discordgo.ApplicationCommand) {},
			expected: true,
		},
		{
			name: "Different Description",
			mutate: func(c *discordgo.ApplicationCommand) {
				c.Description = "changed"
			},
			expected: false,
		},
		{
			name: "Different Option Name",
			mutate: func(c *discordgo.ApplicationCommand) {
				c.Options[0].Name = "title"
			},
			expected: false,
		},
		{
			name: "Option No Longer Required",
			mutate: func(c *discordgo.ApplicationCommand) {
				c.Options[0].Required = false
			},
			expected: false,
		},
		{
			name: "Extra Option",
			mutate: func(c *discordgo.ApplicationCommand) {
				c.Options = append(c.Options, &discordgo.ApplicationCommandOption{
					Type: discordgo.ApplicationCommandOptionString,
					Name: "extra",
				})
			},
			expected: false,
		},
		{
			name: "Choices Differ",
			mutate: func(c *discordgo.ApplicationCommand) {
				c.Options[0].Choices = []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Monday", Value: "mon"},
				}
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desired := base()
			tt.mutate(desired)
			result := commandsEqual(
				[]*discordgo.ApplicationCommand{base()},
				[]*discordgo.ApplicationCommand{desired},
			)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCommandsEqual_CountMismatch(t *testing.T) {
	a, _ := PingCommand()
	b, _ := ListGamesCommand()

	assert.False(t, commandsEqual(
		[]*discordgo.ApplicationCommand{a},
		[]*discordgo.ApplicationCommand{a, b},
	))
	assert.False(t, commandsEqual(
		[]*discordgo.ApplicationCommand{a},
		[]*discordgo.ApplicationCommand{b},
	))
}

func TestCreateEmbed_DefaultFooter(t *testing.T) {
	embed := createEmbed("Title", "body", ColorGames, "")
	assert.Equal(t, FooterHourglass, embed.Footer.Text)
	assert.Equal(t, ColorGames, embed.Color)

	embed = createEmbed("Title", "body", ColorNeutral, "custom")
	assert.Equal(t, "custom", embed.Footer.Text)
}
