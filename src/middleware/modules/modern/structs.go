package modern

import "encoding/json"

// Envelope every JSON endpoint on the modern API wraps its payload in.
type apiResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginResult struct {
	Result bool `json:"result"`
}

type captchaText struct {
	Text string `json:"text"`
}

type loginPayload struct {
	Pwd string `json:"pwd"`
}

// --------------------- CONTENT STRUCTS --------------------- \\
type StorageDevice struct {
	DeviceID   string `json:"deviceId"`
	DeviceType string `json:"deviceType"`
}

type MediaEntry struct {
	FileName  string `json:"fileName"`
	MediaType string `json:"mediaType"`
	FullPath  string `json:"fullPath"`
	UDN       string `json:"udn"`
}

type storagePayload struct {
	Payload struct {
		Devices []StorageDevice `json:"devices"`
	} `json:"payload"`
}

type contentPayload struct {
	Payload struct {
		Results []MediaEntry `json:"results"`
	} `json:"payload"`
}

// --------------------- REQUEST PARAM STRUCTS --------------------- \\
type storageListParam struct {
	DeviceType []string `json:"deviceType"`
}

type contentListParam struct {
	From    string        `json:"from"`
	OrderBy string        `json:"orderBy"`
	Desc    bool          `json:"desc"`
	Limit   int           `json:"limit"`
	Where   []contentCond `json:"where"`
	Filter  []contentCond `json:"filter"`
	Page    string        `json:"page"`
}

type contentCond struct {
	Prop string   `json:"prop"`
	Op   string   `json:"op"`
	Val  []string `json:"val"`
}

type playParam struct {
	ID     string     `json:"id"`
	Params playSource `json:"params"`
}

type playSource struct {
	Type string `json:"type"`
	Src  string `json:"src"`
}
