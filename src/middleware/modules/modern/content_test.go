package modern

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	helpers "lgsignage/src/middleware/helpers"
)

// contentFixture serves an already-authenticated modern display with one
// attached internal device and a content table the tests control.
func contentFixture(t *testing.T, results string) (*httptest.Server, *Client, *string) {
	t.Helper()

	var playedParam string

	mux := http.NewServeMux()
	mux.HandleFunc("/login/status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":200}`)
	})
	mux.HandleFunc("/login/checkLoginStatus", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":200,"data":true}`)
	})
	mux.HandleFunc("/storage/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":200,"data":{"payload":{"devices":[{"deviceId":"internal-01","deviceType":"internal signage"}]}}}`)
	})
	mux.HandleFunc("/content/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":200,"data":{"payload":{"results":%s}}}`, results)
	})
	mux.HandleFunc("/content/play/dsmp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("play used method %s, want PUT", r.Method)
		}
		playedParam = r.URL.Query().Get("reqParam")
		fmt.Fprint(w, `{"status":200,"data":{}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, "secret")
	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return server, client, &playedParam
}

func TestListMediaExcludesDetachedDevices(t *testing.T) {
	// usb-99 is not among the currently attached devices; the display still
	// returns its entries but they must not survive the listing.
	results := `[
		{"fileName":"A.pls","mediaType":"PLAY_LIST","fullPath":"/mnt/lg/appstore/signage/A.pls","udn":"internal-01"},
		{"fileName":"B.pls","mediaType":"PLAY_LIST","fullPath":"/media/usb/B.pls","udn":"usb-99"},
		{"fileName":"C.mp4","mediaType":"VIDEO","fullPath":"/mnt/lg/appstore/signage/C.mp4","udn":"internal-01"}
	]`

	_, client, _ := contentFixture(t, results)

	entries, err := client.ListMedia(nil)
	if err != nil {
		t.Fatalf("ListMedia: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	for _, entry := range entries {
		if entry.UDN != "internal-01" {
			t.Errorf("entry %s kept with detached udn %s", entry.FileName, entry.UDN)
		}
	}
}

func TestPlayPlaylistMatchesExactNameOnly(t *testing.T) {
	results := `[
		{"fileName":"sunday.pls","mediaType":"PLAY_LIST","fullPath":"/mnt/lg/appstore/signage/sunday.pls","udn":"internal-01"},
		{"fileName":"Sunday.pls","mediaType":"PLAY_LIST","fullPath":"/mnt/lg/appstore/signage/Sunday.pls","udn":"internal-01"}
	]`

	_, client, playedParam := contentFixture(t, results)

	if err := client.PlayPlaylist("Sunday.pls"); err != nil {
		t.Fatalf("PlayPlaylist: %v", err)
	}

	var played playParam
	if err := json.Unmarshal([]byte(*playedParam), &played); err != nil {
		t.Fatalf("play reqParam is not JSON: %v", err)
	}
	if played.ID != helpers.DSMPAppID {
		t.Errorf("play target app = %s, want %s", played.ID, helpers.DSMPAppID)
	}
	if played.Params.Src != "/mnt/lg/appstore/signage/Sunday.pls" {
		t.Errorf("play src = %s, want the exact-case match", played.Params.Src)
	}
	if played.Params.Type != "PLAY_LIST" {
		t.Errorf("play type = %s, want PLAY_LIST", played.Params.Type)
	}
}

func TestPlayPlaylistNotFound(t *testing.T) {
	results := `[
		{"fileName":"Monday.pls","mediaType":"PLAY_LIST","fullPath":"/mnt/lg/appstore/signage/Monday.pls","udn":"internal-01"}
	]`

	_, client, playedParam := contentFixture(t, results)

	err := client.PlayPlaylist("Sunday.pls")
	if !errors.Is(err, helpers.ErrReferenceNotFound) {
		t.Fatalf("PlayPlaylist error = %v, want ErrReferenceNotFound", err)
	}
	if *playedParam != "" {
		t.Fatal("play command issued despite missing reference")
	}
}

func TestContentCallsRequireLogin(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0", "secret")

	if _, err := client.ListStorage(); !errors.Is(err, helpers.ErrNotAuthenticated) {
		t.Fatalf("ListStorage error = %v, want ErrNotAuthenticated", err)
	}
	if err := client.PlayByReference("PLAY_LIST", "/tmp/x.pls"); !errors.Is(err, helpers.ErrNotAuthenticated) {
		t.Fatalf("PlayByReference error = %v, want ErrNotAuthenticated", err)
	}
}

func TestSystemInfoFallsBackToLegacyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":200}`)
	})
	mux.HandleFunc("/login/checkLoginStatus", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":200,"data":true}`)
	})
	mux.HandleFunc("/config/getConfigs", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/system", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":200,"data":{"payload":{"tvChipType":"M3"}}}`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, "secret")
	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}

	info, err := client.SystemInfo()
	if err != nil {
		t.Fatalf("SystemInfo: %v", err)
	}
	if _, ok := info["payload"]; !ok {
		t.Fatalf("system info payload missing: %v", info)
	}
}
