package legacy

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	helpers "lgsignage/src/middleware/helpers"
	solver "lgsignage/src/middleware/solver"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
)

// Client drives one legacy (form login + socket.io) display. Captchas are
// bound to the cookie session that fetched them, so every retry must throw
// the whole session away and start over; NewSession hands out those fresh
// sessions and is injectable for tests.
type Client struct {
	BaseURL  string
	Password string
	Logger   *helpers.ColorizedLogger

	// Solver answers captchas automatically. Fallback, when set, is asked
	// once after Solver's attempt budget is spent; it blocks until the
	// operator types the digits.
	Solver      solver.Solver
	Fallback    solver.Solver
	MaxAttempts int
	NewSession  func() (tls_client.HttpClient, error)

	HTTP          tls_client.HttpClient
	authenticated bool
	sid           string
}

func NewClient(logger *helpers.ColorizedLogger, host, password string, port int, captchaSolver solver.Solver) *Client {
	return &Client{
		BaseURL:     fmt.Sprintf("https://%s:%d", host, port),
		Password:    password,
		Logger:      logger,
		Solver:      captchaSolver,
		MaxAttempts: helpers.MaxLoginAttempts,
		NewSession: func() (tls_client.HttpClient, error) {
			return helpers.CreateTLSClient(helpers.DefaultTimeoutSeconds)
		},
	}
}

func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Login runs the bounded retry loop around one-shot attempts. A "restricted"
// answer is a lockout signal and ends the loop immediately no matter how many
// attempts remain; hammering a locked display only keeps it locked.
func (c *Client) Login() error {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.Logger.Warn(fmt.Sprintf("Retrying With A Fresh Session And Captcha [%d/%d]", attempt, attempts))
		}

		err := c.loginOnce(c.Solver)
		if err == nil {
			return nil
		}
		if errors.Is(err, helpers.ErrAccountRestricted) {
			return err
		}

		lastErr = err
		c.Logger.Verbose("Login Attempt Failed: " + err.Error())
	}

	if c.Fallback != nil {
		c.Logger.Warn("Captcha Attempts Exhausted, Asking For Manual Entry")
		if err := c.loginOnce(c.Fallback); err == nil {
			return nil
		} else if errors.Is(err, helpers.ErrAccountRestricted) {
			return err
		} else {
			lastErr = err
		}
	}

	return fmt.Errorf("login failed after %d attempts: %w", attempts, lastErr)
}

// loginOnce is one pass of the state machine: fresh session, load the login
// page, pull a captcha, solve, submit. Any failure invalidates the session.
func (c *Client) loginOnce(captchaSolver solver.Solver) error {
	session, err := c.NewSession()
	if err != nil {
		return fmt.Errorf("%w: session setup: %v", helpers.ErrTransportUnreachable, err)
	}
	c.HTTP = session
	c.authenticated = false
	c.sid = ""

	for _, path := range []string{"/", "/login"} {
		resp, err := c.HTTP.Do(c.getRequest(path))
		if err != nil {
			return fmt.Errorf("%w: GET %s: %v", helpers.ErrTransportUnreachable, path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: GET %s answered %d", helpers.ErrHTTPStatus, path, resp.StatusCode)
		}
	}

	timestamp := time.Now().UnixMilli()
	resp, err := c.HTTP.Do(c.getRequest(fmt.Sprintf("/request/captchapng?timestamp=%d", timestamp)))
	if err != nil {
		return fmt.Errorf("%w: captcha fetch: %v", helpers.ErrTransportUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: captcha fetch answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: captcha fetch: %v", helpers.ErrTransportUnreachable, err)
	}

	captcha, err := captchaSolver.Solve(image)
	if err != nil {
		return err
	}
	c.Logger.Verbose("Submitting Login With Captcha: " + captcha)

	form := url.Values{
		"password": {c.Password},
		"captcha":  {captcha},
	}

	req, _ := http.NewRequest(http.MethodPost, c.BaseURL+"/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loginResp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: login submit: %v", helpers.ErrTransportUnreachable, err)
	}
	defer loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: login submit answered %d", helpers.ErrHTTPStatus, loginResp.StatusCode)
	}

	body, err := io.ReadAll(loginResp.Body)
	if err != nil {
		return fmt.Errorf("%w: login submit: %v", helpers.ErrTransportUnreachable, err)
	}

	answer := strings.TrimSpace(string(body))
	switch {
	case answer == "success":
		c.authenticated = true
		return nil
	case strings.Contains(strings.ToLower(answer), "restricted"):
		return fmt.Errorf("%w: display answered %q", helpers.ErrAccountRestricted, answer)
	default:
		return fmt.Errorf("%w: display answered %q", helpers.ErrAuthRejected, answer)
	}
}

// Logout drops the server-side session. The local session is invalidated
// either way.
func (c *Client) Logout() error {
	defer func() {
		c.authenticated = false
		c.sid = ""
	}()

	if c.HTTP == nil {
		return nil
	}
	resp, err := c.HTTP.Do(c.getRequest("/logout"))
	if err != nil {
		return fmt.Errorf("%w: logout: %v", helpers.ErrTransportUnreachable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: logout answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}
	return nil
}

// LoginStatus reads the display's own view of this session. Plain text.
func (c *Client) LoginStatus() (string, error) {
	if !c.authenticated {
		return "", fmt.Errorf("%w: call Login first", helpers.ErrNotAuthenticated)
	}

	resp, err := c.HTTP.Do(c.getRequest("/getLoginStatus"))
	if err != nil {
		return "", fmt.Errorf("%w: login status: %v", helpers.ErrTransportUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: login status answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: login status: %v", helpers.ErrTransportUnreachable, err)
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) getRequest(path string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	return req
}
