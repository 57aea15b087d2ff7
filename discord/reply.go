package discord

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// Discord rejects embeds beyond these sizes.
const (
	maxEmbedFields      = 25
	maxFieldValue       = 1024
	maxEmbedDescription = 4096
)

// Field is one name/value pair of an embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Reply is a platform-neutral reply payload. Content is sent as plain
// text; the remaining fields form a single embed when any is set.
type Reply struct {
	Content     string
	Title       string
	Description string
	URL         string
	Footer      string
	Image       string
	Thumbnail   string
	Fields      []Field
	Ephemeral   bool
}

// HasEmbed reports whether the reply carries embed content.
func (r Reply) HasEmbed() bool {
	return r.Title != "" || r.Description != "" || r.URL != "" || r.Footer != "" || r.Image != "" || r.Thumbnail != "" || len(r.Fields) > 0
}

// Embed converts the reply into a Discord embed, trimmed to Discord's limits.
func (r Reply) Embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       r.Title,
		Description: truncate(r.Description, maxEmbedDescription),
		URL:         r.URL,
	}
	if r.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: r.Footer}
	}
	if r.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: r.Image}
	}
	if r.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: r.Thumbnail}
	}
	for i, f := range r.Fields {
		if i == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  truncate(f.Value, maxFieldValue),
			Inline: f.Inline,
		})
	}
	return embed
}

// Text renders the reply for a terminal.
func (r Reply) Text() string {
	var sb strings.Builder
	writeLine := func(s string) {
		if s != "" {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}

	writeLine(r.Content)
	writeLine(r.Title)
	writeLine(r.URL)
	writeLine(r.Description)
	for _, f := range r.Fields {
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(strings.TrimRight(f.Value, "\n"))
		sb.WriteString("\n")
	}
	writeLine(r.Footer)
	writeLine(r.Image)
	writeLine(r.Thumbnail)
	return sb.String()
}

// truncate shortens s to limit characters, ending in an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
