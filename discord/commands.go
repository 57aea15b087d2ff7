package discord

import (
	"github.com/bwmarrin/discordgo"

	metaClient "github.com/bastionbot/bastion/metagame/client"
	"github.com/bastionbot/bastion/query"
)

const (
	commandID       = "id"
	commandMetagame = "metagame"
	commandTopCards = "topcards"

	optionInput  = "input"
	optionType   = "type"
	optionRegion = "region"
	optionFormat = "format"
	optionWindow = "window"

	regionRankedUsage = "MD-CU"
	regionRankedTiers = "MD-TL"
)

// Commands returns the slash commands served by the bot.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandID,
			Description: "Identify a card by password, Konami ID, or name.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionInput,
					Description: "The password, Konami ID, or name you're searching by.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionType,
					Description: "Whether you're searching by password, Konami ID, or name.",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: query.Password.String(), Value: string(query.Password)},
						{Name: query.KonamiID.String(), Value: string(query.KonamiID)},
						{Name: query.Name.String(), Value: string(query.Name)},
					},
				},
			},
		},
		{
			Name:        commandMetagame,
			Description: "Show the current competitive strategies in tournaments and the Master Duel ranked ladder.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionRegion,
					Description: "Game region.",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "TCG", Value: "TCG"},
						{Name: "OCG", Value: "OCG"},
						{Name: "OCG (Asian-English)", Value: "OCG-AE"},
						{Name: "Master Duel Diamond+ ranked card usage", Value: regionRankedUsage},
						{Name: "Master Duel Diamond+ tier list", Value: regionRankedTiers},
					},
				},
			},
		},
		{
			Name:        commandTopCards,
			Description: "Show the most played cards in a deck pool.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionFormat,
					Description: "Deck pool.",
					Required:    true,
					Choices:     formatChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionWindow,
					Description: "Date range, current format by default.",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Current format", Value: string(metaClient.WindowFormat)},
						{Name: "Current banlist", Value: string(metaClient.WindowBanlist)},
						{Name: "Last 3 months", Value: string(metaClient.Days(90))},
						{Name: "Last 6 months", Value: string(metaClient.Days(182))},
					},
				},
			},
		},
	}
}

func formatChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(metaClient.Formats))
	for _, f := range metaClient.Formats {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(f), Value: string(f)})
	}
	return choices
}
