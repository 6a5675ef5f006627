package displays

import (
	"fmt"
	"strconv"

	backend "lgsignage/src/backend"
	helpers "lgsignage/src/middleware/helpers"

	"github.com/AlecAivazis/survey/v2"
)

func DisplaysMenu(logger *helpers.ColorizedLogger) {
	for {
		var result string
		options := []string{
			"Add Display",
			"View Displays",
			"Edit Displays File",
			"Back",
		}

		prompt := &survey.Select{
			Message: "Displays Menu:",
			Options: options,
		}

		err := survey.AskOne(prompt, &result)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed To Prompt Displays Menu: %v", err))
			return
		}

		switch result {
		case "Add Display":
			addDisplay(logger)
		case "View Displays":
			viewDisplays(logger)
		case "Edit Displays File":
			path, err := backend.DisplaysPath()
			if err != nil {
				logger.Error("Failed To Resolve Displays File: " + err.Error())
				continue
			}
			if err := backend.OpenInEditor(path); err != nil {
				logger.Error("Failed To Open Displays File: " + err.Error())
			}
		case "Back":
			return
		}
	}
}

func addDisplay(logger *helpers.ColorizedLogger) {
	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Display Name:"},
			Validate: survey.Required,
		},
		{
			Name:     "host",
			Prompt:   &survey.Input{Message: "Host (IP Or Hostname):"},
			Validate: survey.Required,
		},
		{
			Name:   "password",
			Prompt: &survey.Password{Message: "Display Password:"},
		},
		{
			Name:   "port",
			Prompt: &survey.Input{Message: "Port (Blank For Auto-Detect):"},
		},
		{
			Name: "displayType",
			Prompt: &survey.Select{
				Message: "Display Type:",
				Options: []string{"auto-detect", "modern", "legacy"},
				Default: "auto-detect",
			},
		},
	}

	answers := struct {
		Name        string
		Host        string
		Password    string
		Port        string
		DisplayType string
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		logger.Error("Prompt Has Failed Or Been Cancelled: " + err.Error())
		return
	}

	display := helpers.Display{
		Name:     answers.Name,
		Host:     answers.Host,
		Password: answers.Password,
	}
	if answers.Port != "" {
		port, err := strconv.Atoi(answers.Port)
		if err != nil {
			logger.Error("Port Must Be A Number")
			return
		}
		display.Port = port
	}
	if answers.DisplayType != "auto-detect" {
		display.Type = answers.DisplayType
	}

	if err := backend.SaveDisplay(display); err != nil {
		logger.Error("Failed To Save Display: " + err.Error())
		return
	}
	logger.Silly("Successfully Saved Display " + display.Name)
}

func viewDisplays(logger *helpers.ColorizedLogger) {
	displays, err := backend.LoadDisplays()
	if err != nil {
		logger.Error("Failed To Load Displays: " + err.Error())
		return
	}
	if len(displays) == 0 {
		logger.Warn("No Displays Saved Yet")
		return
	}

	for _, display := range displays {
		displayType := display.Type
		if displayType == "" {
			displayType = "auto-detect"
		}
		logger.Info(fmt.Sprintf("%-20s %-16s %s", display.Name, display.Host, displayType))
	}
}
