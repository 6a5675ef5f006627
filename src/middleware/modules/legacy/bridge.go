package legacy

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	helpers "lgsignage/src/middleware/helpers"

	http "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
)

// Luna service calls ride the display's socket.io endpoint. The engine.io
// HTTP polling transport is enough for one-way launch commands and lets the
// authenticated cookie session carry over unchanged, so no separate websocket
// connection is kept.

var sidPattern = regexp.MustCompile(`"sid"\s*:\s*"([^"]+)"`)

// ensureBridge performs the engine.io handshake once per session and keeps
// the sid. Idempotent; a logout or retry clears it.
func (c *Client) ensureBridge() error {
	if !c.authenticated {
		return fmt.Errorf("%w: call Login first", helpers.ErrNotAuthenticated)
	}
	if c.sid != "" {
		return nil
	}

	target := fmt.Sprintf("%s/socket.io/?EIO=3&transport=polling&t=%d", c.BaseURL, time.Now().UnixMilli())
	req, _ := http.NewRequest(http.MethodGet, target, nil)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: socket.io handshake: %v", helpers.ErrTransportUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: socket.io handshake answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: socket.io handshake: %v", helpers.ErrTransportUnreachable, err)
	}

	match := sidPattern.FindSubmatch(body)
	if match == nil {
		return fmt.Errorf("%w: no sid in handshake %q", helpers.ErrProtocolMismatch, string(body))
	}

	c.sid = string(match[1])
	c.Logger.Verbose("Socket.io Session Established: " + c.sid)
	return nil
}

// PalmServiceCall fires one Luna service invocation and returns as soon as
// the packet is accepted. No response is awaited or correlated.
func (c *Client) PalmServiceCall(serviceID string, params any) error {
	if err := c.ensureBridge(); err != nil {
		return err
	}

	message, err := json.Marshal([]any{"PalmServiceBridge.call", bridgeMessage{
		ServiceID: serviceID,
		Params:    params,
		EventID:   uuid.NewString(),
	}})
	if err != nil {
		return fmt.Errorf("%w: marshal bridge message: %v", helpers.ErrProtocolMismatch, err)
	}

	// socket.io EVENT packet inside an engine.io length-prefixed frame.
	packet := "42" + string(message)
	frame := fmt.Sprintf("%d:%s", len(packet), packet)

	target := fmt.Sprintf("%s/socket.io/?EIO=3&transport=polling&sid=%s", c.BaseURL, c.sid)
	req, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(frame))
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: bridge emit: %v", helpers.ErrTransportUnreachable, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: bridge emit answered %d", helpers.ErrHTTPStatus, resp.StatusCode)
	}
	return nil
}

// PlayPlaylist launches DSMP against a playlist path. Relative names resolve
// under the fixed signage directory. Success means the command was dispatched;
// the display sends no acknowledgement for launches.
func (c *Client) PlayPlaylist(path string) error {
	if !strings.HasPrefix(path, "/") {
		path = helpers.SignageDir + "/" + path
	}
	c.Logger.Verbose("Dispatching Playlist Launch: " + path)

	return c.PalmServiceCall(helpers.LunaLaunchService, launchParams{
		ID:     helpers.DSMPAppID,
		Params: playSource{Type: "playlist", Src: path},
	})
}
