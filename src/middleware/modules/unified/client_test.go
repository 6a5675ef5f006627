package unified

import (
	"errors"
	"testing"

	helpers "lgsignage/src/middleware/helpers"
)

type fakeFlow struct {
	authed bool
	played []string
	logins int
}

func (f *fakeFlow) Login() error {
	f.logins++
	f.authed = true
	return nil
}

func (f *fakeFlow) Play(reference string) error {
	f.played = append(f.played, reference)
	return nil
}

func (f *fakeFlow) Authenticated() bool {
	return f.authed
}

func TestPlayRequiresLogin(t *testing.T) {
	client := NewClient(helpers.NewColorizedLogger(false), "host", "pw")

	if err := client.Play("Sunday.pls"); !errors.Is(err, helpers.ErrNotAuthenticated) {
		t.Fatalf("Play with no flow = %v, want ErrNotAuthenticated", err)
	}

	client.flow = &fakeFlow{authed: false}
	if err := client.Play("Sunday.pls"); !errors.Is(err, helpers.ErrNotAuthenticated) {
		t.Fatalf("Play before login = %v, want ErrNotAuthenticated", err)
	}
}

func TestPlayDispatchesToResolvedFlow(t *testing.T) {
	flow := &fakeFlow{authed: true}
	client := NewClient(helpers.NewColorizedLogger(false), "host", "pw")
	client.flow = flow

	if err := client.Play("Sunday.pls"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(flow.played) != 1 || flow.played[0] != "Sunday.pls" {
		t.Fatalf("flow received %v, want [Sunday.pls]", flow.played)
	}
}

func TestPinIdentitySkipsDetection(t *testing.T) {
	client := NewClient(helpers.NewColorizedLogger(false), "host", "pw")
	client.PinIdentity(Legacy, 443)

	if client.Identity == nil || client.Identity.Type != Legacy || client.Identity.Port != 443 {
		t.Fatalf("pinned identity = %+v", client.Identity)
	}

	// A pinned identity must never trigger probing.
	client.Detector = &Detector{
		Logger: helpers.NewColorizedLogger(false),
		BaseURL: func(port int) string {
			t.Fatal("probe issued despite pinned identity")
			return ""
		},
		Candidates: []DisplayIdentity{{Type: Modern, Port: 1}},
	}

	flow := &fakeFlow{}
	client.flow = flow
	if err := client.Login(); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if flow.logins != 1 {
		t.Fatalf("flow.Login called %d times, want 1", flow.logins)
	}
}

func TestResolveIdentityFallsBackToDetector(t *testing.T) {
	client := NewClient(helpers.NewColorizedLogger(false), "host", "pw")
	client.Detector = &Detector{
		Logger: helpers.NewColorizedLogger(false),
		BaseURL: func(port int) string {
			return "http://127.0.0.1:0"
		},
	}

	client.resolveIdentity()

	if client.Identity == nil {
		t.Fatal("identity not resolved")
	}
	if client.Identity.Type != Modern || client.Identity.Port != helpers.ModernDefaultPort {
		t.Fatalf("resolved %s on %d, want the modern default", client.Identity.Type, client.Identity.Port)
	}
}

func TestListMediaRejectsNonModernFlows(t *testing.T) {
	client := NewClient(helpers.NewColorizedLogger(false), "host", "pw")
	client.flow = &fakeFlow{authed: true}

	_, err := client.ListMedia(nil)
	if err == nil {
		t.Fatal("ListMedia succeeded on a non-modern flow")
	}
	if errors.Is(err, helpers.ErrNotAuthenticated) {
		t.Fatal("authenticated flow reported as not logged in")
	}
}

func TestParseDisplayType(t *testing.T) {
	tests := []struct {
		value string
		want  DisplayType
		ok    bool
	}{
		{"modern", Modern, true},
		{"legacy", Legacy, true},
		{"Modern", Modern, false},
		{"", Modern, false},
		{"webos", Modern, false},
	}

	for _, tt := range tests {
		got, ok := ParseDisplayType(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDisplayType(%q) = (%s, %v), want (%s, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisplayTypeString(t *testing.T) {
	if Modern.String() != "modern" || Legacy.String() != "legacy" {
		t.Fatalf("String() = %s/%s", Modern, Legacy)
	}
}
