package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ReadyToPlayCommand returns the ready-to-play command definition and handler.
// Finds members who are free right now and share a game with the invoker.
func ReadyToPlayCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ready-to-play",
		Description: "Find members who are free right now and share your games",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "game",
				Description:  "Only match on this game",
				Required:     false,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			var game string
			if options := getOptions(i); len(options) > 0 {
				game = options[0].StringValue()
			}

			players, err := client.FindReadyPlayers(user.ID, game)
			if err != nil {
				return "", err
			}
			if len(players) == 0 {
				if game != "" {
					return fmt.Sprintf("Nobody is free for **%s** right now. Try again later.", game), nil
				}
				return "Nobody who shares your games is free right now. Try again later.", nil
			}

			var sb strings.Builder
			for _, p := range players {
				fmt.Fprintf(&sb, "<@%d> - %s\n", p.UserID, strings.Join(p.SharedGames, ", "))
			}
			return sb.String(), nil
		}, ResponseConfig{
			Title: "🎯 Ready to Play",
			Color: ColorMatchmaking,
		})
	}

	return cmd, handler
}

// NextAvailableCommand returns the next-available command definition and
// handler. Without a member option it looks up the invoker's own next slot.
func NextAvailableCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "next-available",
		Description: "Show when a member is next available",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "The member to look up (defaults to you)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			target := getInteractionUser(i)
			subject := "You are"
			if options := getOptions(i); len(options) > 0 {
				if other := options[0].UserValue(s); other != nil {
					target = other
					subject = fmt.Sprintf("<@%s> is", other.ID)
				}
			}

			next, err := client.NextAvailable(target.ID)
			if err != nil {
				return "", err
			}
			if next == nil {
				return fmt.Sprintf("%s not available at any point this week.", subject), nil
			}
			if next.IsNow {
				return fmt.Sprintf("%s available **right now** (until %s %s).",
					subject, dayDisplay(next.Day), next.End), nil
			}
			return fmt.Sprintf("%s next available **%s %s-%s** (their local time).",
				subject, dayDisplay(next.Day), next.Start, next.End), nil
		}, ResponseConfig{
			Title: "🎯 Next Available",
			Color: ColorMatchmaking,
		})
	}

	return cmd, handler
}
