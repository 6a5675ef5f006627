package modern

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	helpers "lgsignage/src/middleware/helpers"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
)

// Client drives one modern (JSON API) display. One Client owns one cookie
// session; the cookies set during the login handshake must be reused, not
// rotated, across the handshake steps and every authenticated call after.
type Client struct {
	BaseURL  string
	Password string
	HTTP     tls_client.HttpClient
	Logger   *helpers.ColorizedLogger

	authenticated bool
}

func NewClient(logger *helpers.ColorizedLogger, host, password string, port int) (*Client, error) {
	client, err := helpers.CreateTLSClient(helpers.DefaultTimeoutSeconds)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL:  fmt.Sprintf("https://%s:%d", host, port),
		Password: password,
		HTTP:     client,
		Logger:   logger,
	}, nil
}

func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Login walks the captcha handshake: establish a session, short-circuit if
// the display already considers this session logged in, pull a captcha, then
// submit the password digest. Single attempt; the caller decides whether a
// failure is worth a fresh captcha.
func (c *Client) Login() error {
	resp, err := c.HTTP.Do(c.getRequest("/login/status"))
	if err != nil {
		return fmt.Errorf("%w: session init: %v", helpers.ErrTransportUnreachable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: session init answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}

	status, err := c.fetchJSON("/login/checkLoginStatus")
	if err != nil {
		return err
	}
	if truthy(status.Data) {
		c.Logger.Verbose("Display Reports An Existing Session, Skipping Captcha")
		c.authenticated = true
		return nil
	}

	// The image request seeds the captcha session server-side; the text
	// endpoint only answers after it. Timestamp defeats proxy caching.
	timestamp := time.Now().UnixMilli()
	resp, err = c.HTTP.Do(c.getRequest(fmt.Sprintf("/login/captcha?time=%d", timestamp)))
	if err != nil {
		return fmt.Errorf("%w: captcha image: %v", helpers.ErrTransportUnreachable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: captcha image answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}

	captcha, err := c.fetchJSON("/login/captchaText")
	if err != nil {
		return err
	}
	if captcha.Status != http.StatusOK {
		return fmt.Errorf("%w: captcha text status %d", helpers.ErrHTTPStatus, captcha.Status)
	}

	text, err := decodeCaptchaText(captcha.Data)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(loginPayload{Pwd: EncodePassword(c.Password, text)})
	if err != nil {
		return fmt.Errorf("%w: marshal login payload: %v", helpers.ErrProtocolMismatch, err)
	}

	req, _ := http.NewRequest(http.MethodPost, c.BaseURL+"/login/login", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err = c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: login submit: %v", helpers.ErrTransportUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: login submit: %v", helpers.ErrTransportUnreachable, err)
	}

	var loginResp apiResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return fmt.Errorf("%w: login response is not JSON: %v", helpers.ErrProtocolMismatch, err)
	}

	var result loginResult
	if len(loginResp.Data) > 0 {
		json.Unmarshal(loginResp.Data, &result)
	}

	if loginResp.Status != http.StatusOK || !result.Result {
		// Wrong password and misread captcha are indistinguishable here.
		return fmt.Errorf("%w: display answered status %d", helpers.ErrAuthRejected, loginResp.Status)
	}

	c.authenticated = true
	return nil
}

func (c *Client) getRequest(path string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	return req
}

func (c *Client) fetchJSON(path string) (apiResponse, error) {
	resp, err := c.HTTP.Do(c.getRequest(path))
	if err != nil {
		return apiResponse{}, fmt.Errorf("%w: %s: %v", helpers.ErrTransportUnreachable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiResponse{}, fmt.Errorf("%w: %s answered %d", helpers.ErrHTTPStatus, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiResponse{}, fmt.Errorf("%w: %s: %v", helpers.ErrTransportUnreachable, path, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiResponse{}, fmt.Errorf("%w: %s is not JSON: %v", helpers.ErrProtocolMismatch, path, err)
	}
	return parsed, nil
}

// decodeCaptchaText handles both shapes the endpoint is known to answer
// with: {"data":{"text":"1234"}} on newer firmware, {"data":"1234"} on older.
func decodeCaptchaText(data json.RawMessage) (string, error) {
	var wrapped captchaText
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Text != "" {
		return wrapped.Text, nil
	}

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil && plain != "" {
		return plain, nil
	}
	return "", fmt.Errorf("%w: captcha text payload %q", helpers.ErrProtocolMismatch, string(data))
}

func truthy(data json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(data))
	switch trimmed {
	case "", "false", "null", "0", `""`, "{}":
		return false
	}
	return true
}
