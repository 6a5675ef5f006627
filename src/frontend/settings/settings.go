package settings

import (
	"fmt"

	backend "lgsignage/src/backend"
	setting "lgsignage/src/backend/settings"
	helpers "lgsignage/src/middleware/helpers"

	"github.com/AlecAivazis/survey/v2"
)

func SettingsMenu(logger *helpers.ColorizedLogger) {
	for {
		var result string
		options := []string{
			"Add Webhook",
			"Test Webhook",
			"Set Server Address",
			"Back",
		}

		prompt := &survey.Select{
			Message: "Settings Menu:",
			Options: options,
		}

		err := survey.AskOne(prompt, &result)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed To Prompt Settings Menu: %v", err))
			return
		}

		switch result {
		case "Add Webhook":
			var webhook string
			webhookPrompt := &survey.Input{
				Message: "Enter Discord Webhook URL:",
			}

			if err := survey.AskOne(webhookPrompt, &webhook); err != nil {
				logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
				continue
			}

			if err := setting.UpdateWebhookURL(logger, webhook); err != nil {
				logger.Error("Failed To Save Webhook Settings: " + err.Error())
				continue
			}
			logger.Silly("Successfully Saved Webhook Settings")
		case "Test Webhook":
			settings, err := backend.LoadSettings()
			if err != nil {
				logger.Error("Failed To Load Settings: " + err.Error())
				continue
			}
			setting.SendTestWebhook(settings)
			logger.Info("Test Webhook Dispatched")
		case "Set Server Address":
			var addr string
			addrPrompt := &survey.Input{
				Message: "Enter API Server Address (host:port):",
				Default: "0.0.0.0:8000",
			}

			if err := survey.AskOne(addrPrompt, &addr); err != nil {
				logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
				continue
			}

			if err := setting.UpdateServerAddr(logger, addr); err != nil {
				logger.Error("Failed To Save Server Address: " + err.Error())
				continue
			}
			logger.Silly("Successfully Saved Server Address")
		case "Back":
			return
		}
	}
}
