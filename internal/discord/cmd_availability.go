package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// SetAvailabilityCommand returns the set-availability command definition and
// handler. Overnight windows (start after end) are split at midnight by the
// server.
func SetAvailabilityCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "set-availability",
		Description: "Add a weekly availability window",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "day",
				Description: "Day of the week",
				Required:    true,
				Choices:     weekdayChoices(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "start",
				Description: "Start time, 24-hour HH:MM (your local time)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "end",
				Description: "End time, 24-hour HH:MM (your local time)",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			if len(options) < 3 {
				return "", fmt.Errorf("missing required day/start/end arguments")
			}
			day := options[0].StringValue()
			start := options[1].StringValue()
			end := options[2].StringValue()

			msg, err := client.AddAvailability(user.ID, day, start, end)
			if err != nil {
				return "", err
			}

			parsed, perr := domain.ParseWeekday(day)
			if perr != nil {
				return msg, nil
			}
			if start >= end {
				return fmt.Sprintf("%s: **%s %s** until **%s %s** (split at midnight)",
					msg, dayDisplay(parsed), start, dayDisplay(parsed.Next()), end), nil
			}
			return fmt.Sprintf("%s: **%s %s-%s**", msg, dayDisplay(parsed), start, end), nil
		}, ResponseConfig{
			Title: "📅 Availability Added",
			Color: ColorAvailability,
		})
	}

	return cmd, handler
}

// ClearAvailabilityCommand returns the clear-availability command definition
// and handler
func ClearAvailabilityCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "clear-availability",
		Description: "Clear all availability on a day",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "day",
				Description: "Day of the week",
				Required:    true,
				Choices:     weekdayChoices(),
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			if len(options) == 0 {
				return "", fmt.Errorf("missing required day argument")
			}
			day := options[0].StringValue()

			msg, err := client.ClearAvailability(user.ID, day)
			if err != nil {
				return "", err
			}

			if parsed, perr := domain.ParseWeekday(day); perr == nil {
				return fmt.Sprintf("%s: **%s**", msg, dayDisplay(parsed)), nil
			}
			return msg, nil
		}, ResponseConfig{
			Title: "📅 Availability Cleared",
			Color: ColorAvailability,
		})
	}

	return cmd, handler
}

// MyAvailabilityCommand returns the my-availability command definition and
// handler, rendering the server's weekly summary block.
func MyAvailabilityCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "my-availability",
		Description: "Show your weekly availability",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			summary, err := client.WeeklySummary(user.ID)
			if err != nil {
				return "", err
			}
			return "```\n" + summary + "\n```", nil
		}, ResponseConfig{
			Title: "📅 Your Week",
			Color: ColorAvailability,
		})
	}

	return cmd, handler
}
