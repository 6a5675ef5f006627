package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	backend "lgsignage/src/backend"
	server "lgsignage/src/backend/server"
	displays "lgsignage/src/frontend/displays"
	playback "lgsignage/src/frontend/playback"
	settings "lgsignage/src/frontend/settings"
	helpers "lgsignage/src/middleware/helpers"

	"github.com/AlecAivazis/survey/v2"
	"github.com/joho/godotenv"
)

func main() {
	logger := helpers.NewColorizedLogger(true)

	// Optional .env next to the binary seeds LG_HOST / LG_PASSWORD / LG_PORT
	// / LG_SERVER_ADDR without touching the settings file.
	godotenv.Load()

	helpers.InitFileSystem(logger)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("Exiting LG Signage CLI 👋")
		os.Exit(0)
	}()

	logger.Info("Welcome To The LG Signage CLI")

	for {
		options := []string{
			"Play Playlist",
			"List Media",
			"Displays",
			"Settings",
			"Start API Server",
			"Exit",
		}

		var result string
		prompt := &survey.Select{
			Message: "Select an Option:",
			Options: options,
		}

		err := survey.AskOne(prompt, &result)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed To Prompt CLI Menu: %v", err))
			return
		}

		switch result {
		case "Play Playlist":
			playback.PlayMenu(logger)
		case "List Media":
			playback.MediaMenu(logger)
		case "Displays":
			displays.DisplaysMenu(logger)
		case "Settings":
			settings.SettingsMenu(logger)
		case "Start API Server":
			addr := os.Getenv("LG_SERVER_ADDR")
			if addr == "" {
				if loaded, err := backend.LoadSettings(); err == nil && loaded.ServerAddr != "" {
					addr = loaded.ServerAddr
				} else {
					addr = "0.0.0.0:8000"
				}
			}
			if err := server.Run(addr); err != nil {
				logger.Error(fmt.Sprintf("API Server Stopped: %v", err))
			}
		case "Exit":
			fmt.Println("Exiting LG Signage CLI 👋")
			return
		default:
			logger.Warn("Unknown selection.")
		}
	}
}
