package solver

import (
	"fmt"
	"os"
	"strings"

	helpers "lgsignage/src/middleware/helpers"

	"github.com/AlecAivazis/survey/v2"
)

// PromptSolver blocks on the operator: the captcha image is written next to
// the binary so it can be opened in a viewer, then the 4 digits are read from
// a terminal prompt. Only suitable for interactive, low-frequency use.
type PromptSolver struct {
	Logger *helpers.ColorizedLogger
}

func NewPromptSolver(logger *helpers.ColorizedLogger) *PromptSolver {
	return &PromptSolver{Logger: logger}
}

func (s *PromptSolver) Solve(image []byte) (string, error) {
	if err := os.WriteFile("captcha.png", image, 0644); err != nil {
		s.Logger.Error("Failed To Save Captcha Image: " + err.Error())
	} else {
		s.Logger.Warn("Captcha Saved To captcha.png - Open It To Read The Digits")
	}

	var captcha string
	prompt := &survey.Input{
		Message: "Enter 4-Digit Captcha:",
	}

	err := survey.AskOne(prompt, &captcha, survey.WithValidator(fourDigits))
	if err != nil {
		return "", fmt.Errorf("%w: prompt cancelled: %v", helpers.ErrCaptchaSolveFailure, err)
	}
	return strings.TrimSpace(captcha), nil
}

func fourDigits(ans interface{}) error {
	text, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a string answer")
	}
	text = strings.TrimSpace(text)
	if len(text) != 4 || keepDigits(text) != text {
		return fmt.Errorf("captcha must be exactly 4 digits")
	}
	return nil
}
