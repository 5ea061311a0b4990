package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// AddGameCommand returns the add-game command definition and handler
func AddGameCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "add-game",
		Description: "Add a game to your list",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "game",
				Description:  "Name of the game",
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
				return "", fmt.Errorf("missing required game argument")
			}
			game := options[0].StringValue()

			msg, err := client.AddGame(user.ID, game)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s: **%s**", msg, game), nil
		}, ResponseConfig{
			Title: "🎮 Game Added",
			Color: ColorGames,
		})
	}

	return cmd, handler
}

// RemoveGameCommand returns the remove-game command definition and handler
func RemoveGameCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "remove-game",
		Description: "Remove a game from your list",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "game",
				Description:  "Name of the game",
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
				return "", fmt.Errorf("missing required game argument")
			}
			return client.RemoveGame(user.ID, options[0].StringValue())
		}, ResponseConfig{
			Title: "🎮 Game Removed",
			Color: ColorGames,
		})
	}

	return cmd, handler
}

// removeGameSelectID is the component custom id for the removal select menu.
const removeGameSelectID = "remove-game-select"

// RemoveGameMenuCommand returns the remove-game-menu command, which shows a
// select menu of the user's games instead of requiring a typed name.
func RemoveGameMenuCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "remove-game-menu",
		Description: "Pick a game to remove from a menu",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		user := getInteractionUser(i)

		games, err := client.ListGames(user.ID)
		if err != nil {
			slog.Error("Failed to list games for menu", "error", err)
			if deferResponse(s, i) {
				respondFriendlyError(s, i, err.Error())
			}
			return
		}

		if len(games) == 0 {
			if deferResponse(s, i) {
				respondError(s, i, "Your game list is empty. Add one with /add-game.")
			}
			return
		}

		// Discord caps select menus at 25 options.
		if len(games) > 25 {
			games = games[:25]
		}

		options := make([]discordgo.SelectMenuOption, 0, len(games))
		for _, g := range games {
			options = append(options, discordgo.SelectMenuOption{
				Label: g.Name,
				Value: g.Name,
			})
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Pick the game to remove:",
				Flags:   discordgo.MessageFlagsEphemeral,
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.SelectMenu{
								CustomID:    removeGameSelectID,
								Placeholder: "Select a game",
								Options:     options,
							},
						},
					},
				},
			},
		}); err != nil {
			slog.Error("Failed to send select menu", "error", err)
		}
	}

	return cmd, handler
}

// HandleComponent routes message component interactions.
func HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.MessageComponentData()

	switch data.CustomID {
	case removeGameSelectID:
		handleRemoveGameSelect(s, i, client, data)
	default:
		slog.Warn("Unhandled component interaction", "custom_id", data.CustomID)
	}
}

func handleRemoveGameSelect(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, data discordgo.MessageComponentInteractionData) {
	if len(data.Values) == 0 {
		return
	}
	game := data.Values[0]
	user := getInteractionUser(i)

	msg, err := client.RemoveGame(user.ID, game)
	if err != nil {
		msg = formatFriendlyError(err.Error())
	} else {
		msg = fmt.Sprintf("%s: **%s**", msg, game)
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    msg,
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		slog.Error("Failed to update select menu message", "error", err)
	}
}

// ListGamesCommand returns the list-games command definition and handler
func ListGamesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "list-games",
		Description: "Show the games on your list",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)

			games, err := client.ListGames(user.ID)
			if err != nil {
				return "", err
			}
			if len(games) == 0 {
				return "Your game list is empty. Add one with /add-game.", nil
			}

			var sb strings.Builder
			for n, g := range games {
				fmt.Fprintf(&sb, "%d. %s\n", n+1, g.Name)
			}
			return sb.String(), nil
		}, ResponseConfig{
			Title: "🎮 Your Games",
			Color: ColorGames,
		})
	}

	return cmd, handler
}

// CommonGamesCommand returns the common-games command definition and handler
func CommonGamesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "common-games",
		Description: "Show the games you share with another member",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "The member to compare with",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			if len(options) == 0 {
				return "", fmt.Errorf("missing required member argument")
			}
			other := options[0].UserValue(s)
			if other == nil {
				return "", fmt.Errorf("could not resolve member")
			}

			games, err := client.CommonGames(user.ID, other.ID)
			if err != nil {
				return "", err
			}
			if len(games) == 0 {
				return fmt.Sprintf("You share no games with <@%s> yet.", other.ID), nil
			}

			names := make([]string, 0, len(games))
			for _, g := range games {
				names = append(names, g.Name)
			}
			return fmt.Sprintf("Games you share with <@%s>:\n%s", other.ID, strings.Join(names, ", ")), nil
		}, ResponseConfig{
			Title: "🎮 Common Games",
			Color: ColorGames,
		})
	}

	return cmd, handler
}

// WhoPlaysCommand returns the who-plays command definition and handler
func WhoPlaysCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "who-plays",
		Description: "Show everyone who plays a game",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "game",
				Description:  "Name of the game",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			options := getOptions(i)
			if len(options) == 0 {
				return "", fmt.Errorf("missing required game argument")
			}
			game := options[0].StringValue()

			ids, err := client.WhoPlays(game)
			if err != nil {
				return "", err
			}
			if len(ids) == 0 {
				return fmt.Sprintf("Nobody has **%s** on their list yet.", game), nil
			}

			mentions := make([]string, 0, len(ids))
			for _, id := range ids {
				mentions = append(mentions, fmt.Sprintf("<@%d>", id))
			}
			return fmt.Sprintf("**%s** players: %s", game, strings.Join(mentions, " ")), nil
		}, ResponseConfig{
			Title: "🎮 Who Plays",
			Color: ColorGames,
		})
	}

	return cmd, handler
}
