package legacy

// --------------------- LUNA BRIDGE STRUCTS --------------------- \\
// Message shape the display's PalmServiceBridge expects on the socket.io
// channel. Responses are never correlated; eventId exists so the display can
// answer, not so we can wait.
type bridgeMessage struct {
	ServiceID string `json:"serviceId"`
	Params    any    `json:"params"`
	EventID   string `json:"eventId"`
}

type launchParams struct {
	ID     string     `json:"id"`
	Params playSource `json:"params"`
}

type playSource struct {
	Type string `json:"type"`
	Src  string `json:"src"`
}
