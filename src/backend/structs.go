package backend

type Settings struct {
	WebhookUrl string `json:"webhookUrl"`
	ServerAddr string `json:"serverAddr"`
}
