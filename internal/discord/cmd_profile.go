package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SetTimezoneCommand returns the set-timezone command definition and handler.
// Autocomplete suggests common zones; any IANA name is accepted and validated
// server-side.
func SetTimezoneCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "set-timezone",
		Description: "Set your timezone",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "timezone",
				Description:  "IANA timezone name, e.g. America/New_York",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			if len(options) == 0 {
				return "", fmt.Errorf("missing required timezone argument")
			}
			tz := options[0].StringValue()

			msg, err := client.SetTimezone(user.ID, tz)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s: **%s**", msg, tz), nil
		}, ResponseConfig{
			Title: "🌍 Timezone Set",
			Color: ColorProfile,
		})
	}

	return cmd, handler
}

// MyTimezoneCommand returns the my-timezone command definition and handler
func MyTimezoneCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "my-timezone",
		Description: "Show your timezone",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			tz, err := client.GetTimezone(user.ID)
			if err != nil {
				return "", err
			}
			if tz == nil {
				return "You have no timezone set. Use /set-timezone so matchmaking can find you.", nil
			}
			return fmt.Sprintf("Your timezone is **%s**.", *tz), nil
		}, ResponseConfig{
			Title: "🌍 Your Timezone",
			Color: ColorProfile,
		})
	}

	return cmd, handler
}

// SnoozeCommand returns the snooze command definition and handler.
// A snoozed user is skipped by matchmaking until the snooze expires.
func SnoozeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minMinutes := float64(1)
	cmd := &discordgo.ApplicationCommand{
		Name:        "snooze",
		Description: "Hide from matchmaking for a while",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "minutes",
				Description: "How long to snooze, in minutes",
				Required:    true,
				MinValue:    &minMinutes,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			if len(options) == 0 {
				return "", fmt.Errorf("missing required minutes argument")
			}
			minutes := int(options[0].IntValue())

			until, err := client.Snooze(user.ID, minutes)
			if err != nil {
				return "", err
			}
			// Discord renders <t:unix:t> in each reader's local time.
			return fmt.Sprintf("You are hidden from matchmaking until <t:%d:t>.", until.Unix()), nil
		}, ResponseConfig{
			Title: "⏳ Snoozed",
			Color: ColorProfile,
		})
	}

	return cmd, handler
}

// UnsnoozeCommand returns the unsnooze command definition and handler
func UnsnoozeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "unsnooze",
		Description: "Become visible to matchmaking again",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			return client.Unsnooze(user.ID)
		}, ResponseConfig{
			Title: "⏳ Snooze Cleared",
			Color: ColorProfile,
		})
	}

	return cmd, handler
}
