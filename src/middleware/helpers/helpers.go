/*
- LOGGER FUNCTION
- INITIALIZE FILES FUNCTION
- TASK FUNCTIONS
- REQUEST CLIENT
- IDENTITY CACHE
*/
package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/fatih/color"
)

// ---------------------- LOGGER FUNCTION ---------------------- \\
func FormatDate(t time.Time) string {
	return t.Format("03:04:05 PM - 01/02/2006")
}

var colorCodes = map[string]func(a ...any) string{
	"info":    color.New(color.FgBlue).SprintFunc(),
	"verbose": color.New(color.FgCyan).SprintFunc(),
	"warn":    color.New(color.FgYellow).SprintFunc(),
	"error":   color.New(color.FgRed).SprintFunc(),
	"http":    color.New(color.FgMagenta).SprintFunc(),
	"silly":   color.New(color.FgGreen).SprintFunc(),
}

func (l *ColorizedLogger) log(level, message string) {
	timestamp := FormatDate(time.Now())
	colorFunc, exists := colorCodes[level]
	if !exists {
		colorFunc = color.New(color.Reset).SprintFunc()
	}

	var logMessage string
	if l.useColor {
		logMessage = fmt.Sprintf("%s: %s\n", colorFunc(timestamp), colorFunc(message))
	} else {
		logMessage = fmt.Sprintf("[%s]: %s\n", timestamp, message)
	}

	os.Stdout.WriteString(logMessage)
}

func NewColorizedLogger(useColor bool) *ColorizedLogger {
	return &ColorizedLogger{useColor: useColor}
}

func (l *ColorizedLogger) Info(message string)    { l.log("info", message) }
func (l *ColorizedLogger) Verbose(message string) { l.log("verbose", message) }
func (l *ColorizedLogger) Warn(message string)    { l.log("warn", message) }
func (l *ColorizedLogger) HTTP(message string)    { l.log("http", message) }
func (l *ColorizedLogger) Silly(message string)   { l.log("silly", message) }
func (l *ColorizedLogger) Error(message string)   { l.log("error", message) }

// ---------------------- INITIALIZE FILES FUNCTION ---------------------- \\
func createEmptyJSONArray(path string) {
	empty := []byte("[]")
	os.WriteFile(path, empty, 0644)
}

func createSettingsJSON(path string) {
	settings := map[string]string{
		"webhookUrl": "",
		"serverAddr": "0.0.0.0:8000",
	}
	data, _ := json.MarshalIndent(settings, "", "  ")
	os.WriteFile(path, data, 0644)
}

func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "LG Signage CLI"), nil
}

func InitFileSystem(logger *ColorizedLogger) {
	logger.Info("Initializing LG Signage Engine")
	baseDir, err := BaseDir()
	if err != nil {
		logger.Error("Failed To Get Users Home Directory: " + err.Error())
		os.Exit(1)
	}

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		err = os.Mkdir(baseDir, 0755)
		if err != nil {
			logger.Error("Failed To Create LG Signage CLI Directory: " + err.Error())
			os.Exit(1)
		}
	}

	files := map[string]func(string){
		"displays.json":   createEmptyJSONArray,
		"identities.json": createEmptyJSONArray,
		"settings.json":   createSettingsJSON,
	}

	for filename, createFunc := range files {
		fullPath := filepath.Join(baseDir, filename)
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			createFunc(fullPath)
		}
	}
}

// ---------------------- TASK FUNCTIONS ---------------------- \\
func Delay(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ---------------------- REQUEST CLIENT ---------------------- \\
// Displays ship self-signed certificates, so certificate validation is
// skipped on every client built here. Each client owns a fresh cookie jar:
// one client == one display session.
func CreateTLSClient(timeoutSeconds int) (tls_client.HttpClient, error) {
	jar := tls_client.NewCookieJar()
	options := []tls_client.HttpClientOption{
		tls_client.WithCookieJar(jar),
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithInsecureSkipVerify(),
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ---------------------- IDENTITY CACHE ---------------------- \\
func FetchIdentity(logger *ColorizedLogger, host string) (CachedIdentity, error) {
	baseDir, err := BaseDir()
	if err != nil {
		logger.Error("Failed To Get Users Home Directory: " + err.Error())
		return CachedIdentity{}, err
	}

	identityPath := filepath.Join(baseDir, "identities.json")
	data, err := os.ReadFile(identityPath)
	if err != nil {
		return CachedIdentity{}, err
	}

	var identities []CachedIdentity
	if len(data) > 0 {
		if err := json.Unmarshal(data, &identities); err != nil {
			logger.Error("Failed To Parse Identities File: " + err.Error())
			return CachedIdentity{}, err
		}
	}

	for _, identity := range identities {
		if identity.Host == host {
			return identity, nil
		}
	}
	return CachedIdentity{}, fmt.Errorf("no cached identity for %s", host)
}

func SaveIdentity(logger *ColorizedLogger, identity CachedIdentity) error {
	baseDir, err := BaseDir()
	if err != nil {
		logger.Error("Failed To Get Users Home Directory: " + err.Error())
		return err
	}

	identityPath := filepath.Join(baseDir, "identities.json")
	var identities []CachedIdentity
	if data, err := os.ReadFile(identityPath); err == nil && len(data) > 0 {
		json.Unmarshal(data, &identities)
	}

	replaced := false
	for i, existing := range identities {
		if existing.Host == identity.Host {
			identities[i] = identity
			replaced = true
			break
		}
	}
	if !replaced {
		identities = append(identities, identity)
	}

	data, err := json.MarshalIndent(identities, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(identityPath, data, 0644)
}
