package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	backend "lgsignage/src/backend"
	helpers "lgsignage/src/middleware/helpers"
)

func updateSetting(logger *helpers.ColorizedLogger, key, value string) error {
	baseDir, err := helpers.BaseDir()
	if err != nil {
		logger.Error("Failed To Get Home Directory")
		return err
	}

	settingsPath := filepath.Join(baseDir, "settings.json")

	var settings map[string]string
	fileData, err := os.ReadFile(settingsPath)
	if err != nil {
		logger.Error("Failed To Read Settings File")
		return err
	}

	err = json.Unmarshal(fileData, &settings)
	if err != nil {
		logger.Error("Failed To Unmarshal Settings File")
		return err
	}

	settings[key] = value
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	err = os.WriteFile(settingsPath, data, 0644)
	if err != nil {
		logger.Error("Failed To Update Settings File")
		return err
	}

	return nil
}

func UpdateWebhookURL(logger *helpers.ColorizedLogger, webhook string) error {
	return updateSetting(logger, "webhookUrl", webhook)
}

func UpdateServerAddr(logger *helpers.ColorizedLogger, addr string) error {
	return updateSetting(logger, "serverAddr", addr)
}

func SendTestWebhook(settings backend.Settings) {
	webhookData := func(title, color string) map[string]any {
		return map[string]any{
			"username": "LG Signage CLI",
			"embeds": []map[string]any{
				{
					"title": title,
					"color": backend.ParseIntColor(color),
					"footer": map[string]string{
						"text": "LG Signage CLI",
					},
					"timestamp": time.Now().Format(time.RFC3339),
				},
			},
		}
	}

	if settings.WebhookUrl != "" {
		go backend.SendWebhook(settings.WebhookUrl, webhookData("Webhook Test 📺", "#5665DA"))
	}
}
