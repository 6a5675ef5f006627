package solver

import (
	"fmt"
	"strings"

	helpers "lgsignage/src/middleware/helpers"

	"github.com/otiai10/gosseract/v2"
)

// OCRSolver reads display captchas with tesseract. The captcha font is plain
// digits on a light background, so a digit whitelist plus single-line page
// segmentation is enough most of the time; misreads are handled by the login
// flow's retry budget, not here.
type OCRSolver struct{}

func NewOCRSolver() *OCRSolver {
	return &OCRSolver{}
}

func (s *OCRSolver) Solve(image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	client.SetWhitelist("0123456789")
	client.SetPageSegMode(gosseract.PSM_SINGLE_LINE)

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("%w: %v", helpers.ErrCaptchaSolveFailure, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", helpers.ErrCaptchaSolveFailure, err)
	}

	digits := keepDigits(text)
	if len(digits) != 4 {
		return "", fmt.Errorf("%w: ocr read %q", helpers.ErrCaptchaSolveFailure, strings.TrimSpace(text))
	}
	return digits, nil
}
