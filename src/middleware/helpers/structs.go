package helpers

type ColorizedLogger struct {
	useColor bool
}

// --------------------- DISPLAY STRUCTS --------------------- \\
type Display struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Password string `json:"password"`
	Port     int    `json:"port,omitempty"`
	Type     string `json:"type,omitempty"`
}

// CachedIdentity is a remembered detection result for one host, so a display
// that was probed once is not probed again on the next run.
type CachedIdentity struct {
	Host string `json:"host"`
	Type string `json:"type"`
	Port int    `json:"port"`
}

// --------------------- WEBHOOK STRUCT --------------------- \\
type PlaybackWebhook struct {
	Type        string
	Host        string
	DisplayType string
	Playlist    string
	Reason      string
}
