package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	helpers "lgsignage/src/middleware/helpers"
)

// --------------- UTILITY FUNCTIONS --------------- \\
func OpenInEditor(filename string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", filename)
	case "windows":
		cmd = exec.Command("notepad", filename)
	default:
		cmd = exec.Command("xdg-open", filename)
	}

	return cmd.Run()
}

// --------------- DISPLAY FUNCTIONS --------------- \\
func DisplaysPath() (string, error) {
	baseDir, err := helpers.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, "displays.json"), nil
}

func LoadDisplays() ([]helpers.Display, error) {
	path, err := DisplaysPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var displays []helpers.Display
	err = json.Unmarshal(data, &displays)
	return displays, err
}

func SaveDisplay(display helpers.Display) error {
	path, err := DisplaysPath()
	if err != nil {
		return err
	}

	displays, err := LoadDisplays()
	if err != nil {
		displays = nil
	}

	replaced := false
	for i, existing := range displays {
		if existing.Name == display.Name {
			displays[i] = display
			replaced = true
			break
		}
	}
	if !replaced {
		displays = append(displays, display)
	}

	data, err := json.MarshalIndent(displays, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// --------------- SETTINGS FUNCTIONS --------------- \\
func ParseIntColor(hex string) int {
	var intValue int
	_, err := fmt.Sscanf(hex, "#%06x", &intValue)
	if err != nil {
		return 0
	}
	return intValue
}

func LoadSettings() (Settings, error) {
	baseDir, err := helpers.BaseDir()
	if err != nil {
		return Settings{}, err
	}

	path := filepath.Join(baseDir, "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	err = json.Unmarshal(data, &settings)
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func SendWebhook(url string, data map[string]any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
}
