package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "add-game", "who-plays", "ready-to-play":
		handleGameNameAutocomplete(s, i, client)
	case "remove-game":
		handleOwnedGameAutocomplete(s, i, client)
	case "set-timezone":
		handleTimezoneAutocomplete(s, i)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// handleGameNameAutocomplete suggests from every game known to the service
func handleGameNameAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	focusedValue := getFocusedOptionValue(i.ApplicationCommandData().Options)

	names, err := client.AllGameNames()
	if err != nil {
		slog.Error("Failed to get game names for autocomplete", "error", err)
		respondAutocomplete(s, i, nil)
		return
	}

	respondAutocomplete(s, i, filterChoices(names, focusedValue))
}

// handleOwnedGameAutocomplete suggests only from the invoker's own list
func handleOwnedGameAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	user := getInteractionUser(i)
	if user == nil {
		slog.Error("Failed to get user from autocomplete interaction")
		respondAutocomplete(s, i, nil)
		return
	}

	focusedValue := getFocusedOptionValue(i.ApplicationCommandData().Options)

	games, err := client.ListGames(user.ID)
	if err != nil {
		slog.Error("Failed to get games for autocomplete", "error", err, "user", user.ID)
		respondAutocomplete(s, i, nil)
		return
	}

	names := make([]string, 0, len(games))
	for _, g := range games {
		names = append(names, g.Name)
	}
	respondAutocomplete(s, i, filterChoices(names, focusedValue))
}

// commonTimezones is the suggestion list for set-timezone. Any IANA name is
// accepted; these just cover the usual suspects.
var commonTimezones = []string{
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Phoenix",
	"America/Los_Angeles",
	"America/Anchorage",
	"Pacific/Honolulu",
	"America/Toronto",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Madrid",
	"Europe/Stockholm",
	"Europe/Moscow",
	"Africa/Johannesburg",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Asia/Seoul",
	"Australia/Sydney",
	"Pacific/Auckland",
	"UTC",
}

func handleTimezoneAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	focusedValue := getFocusedOptionValue(i.ApplicationCommandData().Options)
	respondAutocomplete(s, i, filterChoices(commonTimezones, focusedValue))
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

// filterChoices does a case-insensitive substring match and applies the
// 25-choice Discord cap.
func filterChoices(names []string, focusedValue string) []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range names {
		if focusedValue == "" || strings.Contains(strings.ToLower(name), focusedValue) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  name,
				Value: name,
			})
		}
		if len(choices) >= 25 {
			break
		}
	}
	return choices
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
