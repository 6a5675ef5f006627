package modern

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	helpers "lgsignage/src/middleware/helpers"

	http "github.com/bogdanfinn/fhttp"
)

// Media types the content database knows about.
var AllMediaTypes = []string{"VIDEO", "IMAGE", "TEMPLATE", "SUPER_SIGN", "PLAY_LIST"}

// Storage device classes worth enumerating. "internal signage" is the
// display's own flash, the other two are removable.
var storageDeviceTypes = []string{"internal signage", "usb", "sdcard"}

// Upper bound per listing call. Callers needing more must page explicitly.
const mediaListLimit = 100

// request issues an authenticated call and decodes the standard envelope.
// Fails fast before touching the network when Login has not succeeded yet.
func (c *Client) request(method, endpoint string, params url.Values) (apiResponse, error) {
	if !c.authenticated {
		return apiResponse{}, fmt.Errorf("%w: call Login first", helpers.ErrNotAuthenticated)
	}

	target := c.BaseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return apiResponse{}, fmt.Errorf("%w: %v", helpers.ErrProtocolMismatch, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return apiResponse{}, fmt.Errorf("%w: %s: %v", helpers.ErrTransportUnreachable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiResponse{}, fmt.Errorf("%w: %s answered %d", helpers.ErrHTTPStatus, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiResponse{}, fmt.Errorf("%w: %s: %v", helpers.ErrTransportUnreachable, endpoint, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiResponse{}, fmt.Errorf("%w: %s is not JSON: %v", helpers.ErrProtocolMismatch, endpoint, err)
	}
	return parsed, nil
}

func reqParam(v any) url.Values {
	encoded, _ := json.Marshal(v)
	return url.Values{"reqParam": {string(encoded)}}
}

// ListStorage enumerates the storage devices currently attached to the
// display. Fetched on demand, never cached: USB sticks come and go.
func (c *Client) ListStorage() ([]StorageDevice, error) {
	resp, err := c.request(http.MethodGet, "/storage/list", reqParam(storageListParam{DeviceType: storageDeviceTypes}))
	if err != nil {
		return nil, err
	}

	var payload storagePayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: storage payload: %v", helpers.ErrProtocolMismatch, err)
	}
	return payload.Payload.Devices, nil
}

// ListMedia returns media entries filtered by type, ordered by file name
// ascending. Entries claiming a device that is no longer attached are
// dropped even when the display still returns them; a stale udn is not
// playable.
func (c *Client) ListMedia(typeFilters []string) ([]MediaEntry, error) {
	if len(typeFilters) == 0 {
		typeFilters = AllMediaTypes
	}

	devices, err := c.ListStorage()
	if err != nil {
		return nil, err
	}

	deviceIDs := make([]string, 0, len(devices))
	for _, device := range devices {
		deviceIDs = append(deviceIDs, device.DeviceID)
	}

	param := contentListParam{
		From:    "MEDIA",
		OrderBy: "FILE_NAME",
		Desc:    false,
		Limit:   mediaListLimit,
		Where:   []contentCond{{Prop: "mediaType", Op: "=", Val: typeFilters}},
		Filter:  []contentCond{{Prop: "udn", Op: "=", Val: deviceIDs}},
		Page:    "",
	}

	resp, err := c.request(http.MethodGet, "/content/list", reqParam(param))
	if err != nil {
		return nil, err
	}

	var payload contentPayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: content payload: %v", helpers.ErrProtocolMismatch, err)
	}

	present := make(map[string]bool, len(deviceIDs))
	for _, id := range deviceIDs {
		present[id] = true
	}

	entries := make([]MediaEntry, 0, len(payload.Payload.Results))
	for _, entry := range payload.Payload.Results {
		if present[entry.UDN] {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// PlayByReference launches DSMP against a known media type and path,
// bypassing the listing round-trip.
func (c *Client) PlayByReference(mediaType, path string) error {
	param := playParam{
		ID:     helpers.DSMPAppID,
		Params: playSource{Type: mediaType, Src: path},
	}

	resp, err := c.request(http.MethodPut, "/content/play/dsmp", reqParam(param))
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return fmt.Errorf("%w: play answered status %d", helpers.ErrHTTPStatus, resp.Status)
	}
	return nil
}

// PlayPlaylist resolves a playlist by exact file name and plays it. A missing
// name is a ReferenceNotFound, not a transport failure.
func (c *Client) PlayPlaylist(name string) error {
	media, err := c.ListMedia([]string{"PLAY_LIST"})
	if err != nil {
		return err
	}

	for _, entry := range media {
		if entry.FileName == name {
			return c.PlayByReference(entry.MediaType, entry.FullPath)
		}
	}
	return fmt.Errorf("%w: playlist %q", helpers.ErrReferenceNotFound, name)
}

// SystemInfo reads the display's system configuration. The endpoint moved
// between firmware generations, so both known paths are tried in order.
func (c *Client) SystemInfo() (map[string]any, error) {
	var lastErr error
	for _, endpoint := range []string{"/config/getConfigs", "/api/system"} {
		resp, err := c.request(http.MethodGet, endpoint, nil)
		if err != nil {
			lastErr = err
			continue
		}

		var info map[string]any
		if err := json.Unmarshal(resp.Data, &info); err != nil {
			lastErr = fmt.Errorf("%w: system info payload: %v", helpers.ErrProtocolMismatch, err)
			continue
		}
		return info, nil
	}
	return nil, lastErr
}
