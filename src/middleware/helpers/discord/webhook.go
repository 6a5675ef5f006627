package discord

import (
	"encoding/json"
	"fmt"
	"time"

	backend "lgsignage/src/backend"
	helpers "lgsignage/src/middleware/helpers"

	discordwebhook "github.com/bensch777/discord-webhook-golang"
)

// SendPlayback posts a playback result embed to the configured webhook.
// A missing webhook URL is not an error - notifications are opt-in.
func SendPlayback(logger *helpers.ColorizedLogger, data helpers.PlaybackWebhook) error {
	settings, err := backend.LoadSettings()
	if err != nil {
		return err
	}
	if settings.WebhookUrl == "" {
		return nil
	}

	var (
		title string
		color int
	)

	switch data.Type {
	case "Success":
		title = "Playlist Playback Started 📺"
		color = 5662170
	case "Failure":
		title = "Playlist Playback Failed ❌"
		color = 8388640
	default:
		return fmt.Errorf("unsupported type")
	}

	fields := []discordwebhook.Field{
		{Name: "**Display**", Value: data.Host, Inline: false},
		{Name: "**API Type**", Value: data.DisplayType, Inline: true},
		{Name: "**Playlist**", Value: data.Playlist, Inline: true},
	}
	if data.Reason != "" {
		fields = append(fields, discordwebhook.Field{Name: "**Reason**", Value: data.Reason, Inline: false})
	}

	hook := discordwebhook.Hook{
		Username: "LG Signage CLI",
		Embeds: []discordwebhook.Embed{
			{
				Title:     title,
				Color:     color,
				Timestamp: time.Now(),
				Fields:    fields,
				Footer: discordwebhook.Footer{
					Text: "LG Signage CLI",
				},
			},
		},
	}

	payload, err := json.Marshal(hook)
	if err != nil {
		return err
	}
	return discordwebhook.ExecuteWebhook(settings.WebhookUrl, payload)
}
