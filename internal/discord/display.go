package discord

import (
	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

var titleCaser = cases.Title(language.English)

var dayLongNames = map[domain.Weekday]string{
	domain.Monday:    "monday",
	domain.Tuesday:   "tuesday",
	domain.Wednesday: "wednesday",
	domain.Thursday:  "thursday",
	domain.Friday:    "friday",
	domain.Saturday:  "saturday",
	domain.Sunday:    "sunday",
}

// dayDisplay renders a weekday key as its title-cased long name for embeds.
func dayDisplay(d domain.Weekday) string {
	if long, ok := dayLongNames[d]; ok {
		return titleCaser.String(long)
	}
	return titleCaser.String(string(d))
}

// weekdayChoices returns the 7 day choices used by scheduling commands.
func weekdayChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.DayKeys))
	for _, d := range domain.DayKeys {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  dayDisplay(d),
			Value: string(d),
		})
	}
	return choices
}
