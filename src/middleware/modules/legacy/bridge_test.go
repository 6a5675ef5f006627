package legacy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	helpers "lgsignage/src/middleware/helpers"
	solver "lgsignage/src/middleware/solver"
)

// bridgeFixture extends the legacy fake with a socket.io polling endpoint and
// records every emitted frame.
func bridgeFixture(t *testing.T) (*Client, *[]string) {
	t.Helper()

	var frames []string

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			r.ParseForm()
			if r.FormValue("captcha") == "4821" {
				fmt.Fprint(w, "success")
			} else {
				fmt.Fprint(w, "failed")
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>login</html>")
	})
	mux.HandleFunc("/request/captchapng", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	})
	mux.HandleFunc("/socket.io/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			frames = append(frames, string(body))
			fmt.Fprint(w, "ok")
			return
		}
		fmt.Fprint(w, `97:0{"sid":"abc123","upgrades":["websocket"],"pingInterval":25000,"pingTimeout":60000}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(helpers.NewColorizedLogger(false), "ignored", "hunter2", 443, solver.StaticSolver{Answer: "4821"})
	client.BaseURL = server.URL
	return client, &frames
}

func TestPlayPlaylistEmitsLaunchFrame(t *testing.T) {
	client, frames := bridgeFixture(t)

	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := client.PlayPlaylist("Sunday.pls"); err != nil {
		t.Fatalf("PlayPlaylist: %v", err)
	}

	if len(*frames) != 1 {
		t.Fatalf("emitted %d frames, want 1", len(*frames))
	}
	frame := (*frames)[0]

	// Length-prefixed engine.io frame around a socket.io EVENT packet.
	prefix, packet, ok := strings.Cut(frame, ":")
	if !ok {
		t.Fatalf("frame %q has no length prefix", frame)
	}
	if fmt.Sprint(len(packet)) != prefix {
		t.Errorf("frame length prefix %s does not match packet length %d", prefix, len(packet))
	}
	if !strings.HasPrefix(packet, `42["PalmServiceBridge.call"`) {
		t.Errorf("packet %q is not a PalmServiceBridge.call event", packet)
	}
	for _, want := range []string{
		helpers.LunaLaunchService,
		helpers.DSMPAppID,
		`"src":"/mnt/lg/appstore/signage/Sunday.pls"`,
		`"type":"playlist"`,
	} {
		if !strings.Contains(packet, want) {
			t.Errorf("packet missing %q: %s", want, packet)
		}
	}
}

func TestPlayPlaylistKeepsAbsolutePaths(t *testing.T) {
	client, frames := bridgeFixture(t)

	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := client.PlayPlaylist("/media/usb/Loop.pls"); err != nil {
		t.Fatalf("PlayPlaylist: %v", err)
	}

	if !strings.Contains((*frames)[0], `"src":"/media/usb/Loop.pls"`) {
		t.Errorf("absolute path was rewritten: %s", (*frames)[0])
	}
}

func TestBridgeHandshakeOncePerSession(t *testing.T) {
	client, frames := bridgeFixture(t)

	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := client.PlayPlaylist("A.pls"); err != nil {
		t.Fatalf("first launch: %v", err)
	}
	sid := client.sid
	if sid != "abc123" {
		t.Fatalf("sid = %q, want abc123", sid)
	}

	if err := client.PlayPlaylist("B.pls"); err != nil {
		t.Fatalf("second launch: %v", err)
	}
	if client.sid != sid {
		t.Errorf("second launch renegotiated the handshake: %q -> %q", sid, client.sid)
	}
	if len(*frames) != 2 {
		t.Fatalf("emitted %d frames, want 2", len(*frames))
	}
}

func TestPalmServiceCallRequiresLogin(t *testing.T) {
	client, _ := bridgeFixture(t)

	err := client.PalmServiceCall(helpers.LunaLaunchService, nil)
	if !errors.Is(err, helpers.ErrNotAuthenticated) {
		t.Fatalf("PalmServiceCall error = %v, want ErrNotAuthenticated", err)
	}
}
