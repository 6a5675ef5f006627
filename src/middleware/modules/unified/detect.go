package unified

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	helpers "lgsignage/src/middleware/helpers"

	http "github.com/bogdanfinn/fhttp"
)

// Detector classifies a host by probing a short, fixed-priority candidate
// list. Modern candidates are tried first; the first candidate whose
// discriminant holds wins and no further probes are issued. Probe failures
// of any kind just mean "not this one".
type Detector struct {
	Logger         *helpers.ColorizedLogger
	TimeoutSeconds int

	// BaseURL builds the probe target for a port. Overridable so tests can
	// point probes at a fake display.
	BaseURL    func(port int) string
	Candidates []DisplayIdentity
}

func NewDetector(logger *helpers.ColorizedLogger, host string) *Detector {
	return &Detector{
		Logger:         logger,
		TimeoutSeconds: helpers.ProbeTimeoutSeconds,
		BaseURL: func(port int) string {
			return fmt.Sprintf("https://%s:%d", host, port)
		},
		Candidates: []DisplayIdentity{
			{Type: Modern, Port: helpers.ModernDefaultPort},
			{Type: Modern, Port: helpers.LegacyDefaultPort},
			{Type: Legacy, Port: helpers.LegacyDefaultPort},
		},
	}
}

// Detect never fails: when every candidate is exhausted it falls back to
// modern on its standard port, leaving the actual error surfacing to the
// login flow that follows.
func (d *Detector) Detect() DisplayIdentity {
	for _, candidate := range d.Candidates {
		base := d.BaseURL(candidate.Port)

		var matched bool
		switch candidate.Type {
		case Modern:
			matched = d.probeModern(base)
		case Legacy:
			matched = d.probeLegacy(base)
		}

		if matched {
			d.Logger.Verbose(fmt.Sprintf("Detected %s Display On Port %d", candidate.Type, candidate.Port))
			return candidate
		}
	}

	d.Logger.Warn("Display Type Detection Exhausted, Assuming Modern On Default Port")
	return DisplayIdentity{Type: Modern, Port: helpers.ModernDefaultPort}
}

// probeModern confirms the JSON login API: /login/status must answer 200 and
// /login/captchaText must yield JSON carrying both a status and a message
// field. That JSON shape is the discriminant - legacy displays answer those
// paths with HTML, if at all.
func (d *Detector) probeModern(base string) bool {
	client, err := helpers.CreateTLSClient(d.TimeoutSeconds)
	if err != nil {
		return false
	}

	resp, err := client.Do(probeRequest(base + "/login/status"))
	if err != nil {
		return false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	resp, err = client.Do(probeRequest(base + "/login/captchaText"))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(body, &shape); err != nil {
		return false
	}
	_, hasStatus := shape["status"]
	_, hasMessage := shape["message"]
	return hasStatus && hasMessage
}

// probeLegacy confirms the form login page: /login must be an HTML document
// and the captcha image route must exist. A 404 on the captcha still proves
// the route - it only means no captcha session is active right now.
func (d *Detector) probeLegacy(base string) bool {
	client, err := helpers.CreateTLSClient(d.TimeoutSeconds)
	if err != nil {
		return false
	}

	resp, err := client.Do(probeRequest(base + "/login"))
	if err != nil {
		return false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return false
	}

	resp, err = client.Do(probeRequest(base + "/request/captchapng"))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
}

func probeRequest(target string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	return req
}
