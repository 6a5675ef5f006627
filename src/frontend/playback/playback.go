package playback

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	backend "lgsignage/src/backend"
	helpers "lgsignage/src/middleware/helpers"
	discord "lgsignage/src/middleware/helpers/discord"
	unified "lgsignage/src/middleware/modules/unified"
	solver "lgsignage/src/middleware/solver"

	"github.com/AlecAivazis/survey/v2"
)

// PlayMenu logs into a display and starts a playlist, reporting the result
// to the configured webhook either way.
func PlayMenu(logger *helpers.ColorizedLogger) {
	display, ok := chooseDisplay(logger)
	if !ok {
		return
	}

	var playlist string
	prompt := &survey.Input{
		Message: "Playlist File Name (e.g. Sunday.pls):",
	}
	if err := survey.AskOne(prompt, &playlist); err != nil {
		logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
		return
	}
	playlist = strings.TrimSpace(playlist)
	if playlist == "" {
		logger.Warn("No Playlist Name Entered")
		return
	}

	client := buildClient(logger, display)
	client.Fallback = solver.NewPromptSolver(logger)

	logger.Info(fmt.Sprintf("Logging Into %s", display.Host))
	if err := client.Login(); err != nil {
		logger.Error("Failed To Log Into Display: " + err.Error())
		notify(logger, client, display, playlist, err)
		return
	}
	logger.Silly(fmt.Sprintf("Logged In - %s Display On Port %d", client.Identity.Type, client.Identity.Port))

	if err := client.Play(playlist); err != nil {
		logger.Error("Failed To Play Playlist: " + err.Error())
		notify(logger, client, display, playlist, err)
		return
	}

	logger.Silly("Playlist Playback Command Sent ✅")
	notify(logger, client, display, playlist, nil)
}

// MediaMenu lists the media inventory of a modern display.
func MediaMenu(logger *helpers.ColorizedLogger) {
	display, ok := chooseDisplay(logger)
	if !ok {
		return
	}

	client := buildClient(logger, display)
	client.Fallback = solver.NewPromptSolver(logger)

	logger.Info(fmt.Sprintf("Logging Into %s", display.Host))
	if err := client.Login(); err != nil {
		logger.Error("Failed To Log Into Display: " + err.Error())
		return
	}

	entries, err := client.ListMedia(nil)
	if err != nil {
		logger.Error("Failed To List Media: " + err.Error())
		return
	}

	if len(entries) == 0 {
		logger.Warn("No Media Found On Attached Storage")
		return
	}

	for _, entry := range entries {
		logger.Info(fmt.Sprintf("%-10s %-30s %s", entry.MediaType, entry.FileName, entry.FullPath))
	}
}

func notify(logger *helpers.ColorizedLogger, client *unified.Client, display helpers.Display, playlist string, playErr error) {
	data := helpers.PlaybackWebhook{
		Type:     "Success",
		Host:     display.Host,
		Playlist: playlist,
	}
	if client.Identity != nil {
		data.DisplayType = client.Identity.Type.String()
	}
	if playErr != nil {
		data.Type = "Failure"
		data.Reason = playErr.Error()
	}

	if err := discord.SendPlayback(logger, data); err != nil {
		logger.Error("Failed To Send Playback Webhook: " + err.Error())
	}
}

func buildClient(logger *helpers.ColorizedLogger, display helpers.Display) *unified.Client {
	client := unified.NewClient(logger, display.Host, display.Password)
	client.Solver = solver.NewOCRSolver()
	client.CacheIdentity = true

	if display.Type != "" && display.Port > 0 {
		if displayType, ok := unified.ParseDisplayType(display.Type); ok {
			client.PinIdentity(displayType, display.Port)
		}
	}
	return client
}

func chooseDisplay(logger *helpers.ColorizedLogger) (helpers.Display, bool) {
	displays, err := backend.LoadDisplays()
	if err != nil {
		logger.Warn("Failed To Load Saved Displays: " + err.Error())
	}

	options := make([]string, 0, len(displays)+2)
	for _, display := range displays {
		options = append(options, fmt.Sprintf("%s (%s)", display.Name, display.Host))
	}
	options = append(options, "Manual Entry", "Back")

	var result string
	prompt := &survey.Select{
		Message: "Select a Display:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
		return helpers.Display{}, false
	}

	switch result {
	case "Back":
		return helpers.Display{}, false
	case "Manual Entry":
		return manualDisplay(logger)
	default:
		for _, display := range displays {
			if result == fmt.Sprintf("%s (%s)", display.Name, display.Host) {
				return display, true
			}
		}
		return helpers.Display{}, false
	}
}

func manualDisplay(logger *helpers.ColorizedLogger) (helpers.Display, bool) {
	var host string
	hostPrompt := &survey.Input{
		Message: "Display Host:",
		Default: os.Getenv("LG_HOST"),
	}
	if err := survey.AskOne(hostPrompt, &host); err != nil {
		logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
		return helpers.Display{}, false
	}

	var password string
	passwordPrompt := &survey.Password{
		Message: "Display Password:",
	}
	if err := survey.AskOne(passwordPrompt, &password); err != nil {
		logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
		return helpers.Display{}, false
	}
	if password == "" {
		password = os.Getenv("LG_PASSWORD")
	}

	display := helpers.Display{Host: strings.TrimSpace(host), Password: password}
	if portEnv := os.Getenv("LG_PORT"); portEnv != "" {
		if port, err := strconv.Atoi(portEnv); err == nil {
			display.Port = port
		}
	}
	return display, display.Host != ""
}
