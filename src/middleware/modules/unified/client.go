package unified

import (
	"fmt"

	helpers "lgsignage/src/middleware/helpers"
	legacy "lgsignage/src/middleware/modules/legacy"
	modern "lgsignage/src/middleware/modules/modern"
	solver "lgsignage/src/middleware/solver"
)

// Client is the one entry point callers use: it resolves which API variant a
// host speaks (unless pinned), then routes login and playback through the
// matching flow for the lifetime of the client.
type Client struct {
	Host     string
	Password string
	Logger   *helpers.ColorizedLogger

	// Solver/Fallback only matter for legacy displays. A nil Solver gets the
	// OCR default; Fallback stays optional because a headless caller cannot
	// answer a prompt.
	Solver      solver.Solver
	Fallback    solver.Solver
	MaxAttempts int

	// CacheIdentity persists detection results under the CLI base directory
	// so a once-probed display is not probed again next run.
	CacheIdentity bool

	Identity *DisplayIdentity
	Detector *Detector

	flow loginFlow
}

func NewClient(logger *helpers.ColorizedLogger, host, password string) *Client {
	return &Client{
		Host:     host,
		Password: password,
		Logger:   logger,
	}
}

// PinIdentity fixes the display variant and port up front, skipping
// detection entirely. Detection failure must never block a caller who
// already knows what the display is.
func (c *Client) PinIdentity(displayType DisplayType, port int) {
	c.Identity = &DisplayIdentity{Type: displayType, Port: port}
}

// Login resolves the identity once, builds the matching flow and runs it.
// Calling Login again on an authenticated client is harmless; both flows
// treat an existing valid session as success.
func (c *Client) Login() error {
	if c.Identity == nil {
		c.resolveIdentity()
	}
	if c.flow == nil {
		if err := c.buildFlow(); err != nil {
			return err
		}
	}
	return c.flow.Login()
}

// Play routes a playback reference to the resolved flow. On modern displays
// the reference is matched against the playlist listing by exact file name;
// on legacy displays it is normalized to a signage path and fired one-way.
func (c *Client) Play(reference string) error {
	if c.flow == nil || !c.flow.Authenticated() {
		return fmt.Errorf("%w: call Login first", helpers.ErrNotAuthenticated)
	}
	return c.flow.Play(reference)
}

// ListMedia lists media on modern displays. Legacy displays expose no
// content inventory over their channel.
func (c *Client) ListMedia(typeFilters []string) ([]modern.MediaEntry, error) {
	if c.flow == nil || !c.flow.Authenticated() {
		return nil, fmt.Errorf("%w: call Login first", helpers.ErrNotAuthenticated)
	}

	flow, ok := c.flow.(modernFlow)
	if !ok {
		return nil, fmt.Errorf("media listing is only available on modern displays")
	}
	return flow.Client.ListMedia(typeFilters)
}

func (c *Client) resolveIdentity() {
	if c.CacheIdentity {
		if cached, err := helpers.FetchIdentity(c.Logger, c.Host); err == nil {
			if displayType, ok := ParseDisplayType(cached.Type); ok && cached.Port > 0 {
				c.Logger.Verbose(fmt.Sprintf("Using Cached Identity For %s: %s On Port %d", c.Host, cached.Type, cached.Port))
				c.Identity = &DisplayIdentity{Type: displayType, Port: cached.Port}
				return
			}
		}
	}

	detector := c.Detector
	if detector == nil {
		detector = NewDetector(c.Logger, c.Host)
	}

	identity := detector.Detect()
	c.Identity = &identity

	if c.CacheIdentity {
		helpers.SaveIdentity(c.Logger, helpers.CachedIdentity{
			Host: c.Host,
			Type: identity.Type.String(),
			Port: identity.Port,
		})
	}
}

func (c *Client) buildFlow() error {
	switch c.Identity.Type {
	case Legacy:
		captchaSolver := c.Solver
		if captchaSolver == nil {
			captchaSolver = solver.NewOCRSolver()
		}

		client := legacy.NewClient(c.Logger, c.Host, c.Password, c.Identity.Port, captchaSolver)
		client.Fallback = c.Fallback
		if c.MaxAttempts > 0 {
			client.MaxAttempts = c.MaxAttempts
		}
		c.flow = legacyFlow{client}
	default:
		client, err := modern.NewClient(c.Logger, c.Host, c.Password, c.Identity.Port)
		if err != nil {
			return fmt.Errorf("%w: client setup: %v", helpers.ErrTransportUnreachable, err)
		}
		c.flow = modernFlow{client}
	}
	return nil
}

// modernFlow and legacyFlow adapt the generation-specific clients to the
// loginFlow capability.
type modernFlow struct {
	*modern.Client
}

func (f modernFlow) Play(reference string) error {
	return f.PlayPlaylist(reference)
}

type legacyFlow struct {
	*legacy.Client
}

func (f legacyFlow) Play(reference string) error {
	return f.PlayPlaylist(reference)
}
