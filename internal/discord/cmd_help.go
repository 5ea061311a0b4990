package discord

import (
	"github.com/bwmarrin/discordgo"
)

// HelpCommand returns the hourglass command, an overview of everything the
// bot can do.
func HelpCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "hourglass",
		Description: "Show what Hourglass can do",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		embed := &discordgo.MessageEmbed{
			Title: "⌛ Hourglass",
			Description: "Hourglass tracks when your server is free to play. " +
				"Set your timezone, share your weekly availability, list your games, " +
				"and find out who is ready right now.",
			Color: ColorNeutral,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name: "📅 Availability",
					Value: "`/set-availability` add a weekly window\n" +
						"`/clear-availability` clear a day\n" +
						"`/my-availability` show your week",
				},
				{
					Name: "🎮 Games",
					Value: "`/add-game` `/remove-game` `/remove-game-menu` manage your list\n" +
						"`/list-games` show your list\n" +
						"`/common-games` compare with a member\n" +
						"`/who-plays` see who plays a game",
				},
				{
					Name: "🎯 Matchmaking",
					Value: "`/ready-to-play` who is free right now\n" +
						"`/next-available` when someone is next free",
				},
				{
					Name: "🌍 Profile",
					Value: "`/set-timezone` `/my-timezone` timezone setup\n" +
						"`/snooze` `/unsnooze` hide from matchmaking for a while",
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: FooterHourglass,
			},
		}

		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
