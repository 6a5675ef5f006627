package helpers

const (
	// Ports the two display generations listen on by default.
	ModernDefaultPort = 3777
	LegacyDefaultPort = 443

	// Fixed signage content directory on legacy displays. Relative playlist
	// names are resolved against it.
	SignageDir = "/mnt/lg/appstore/signage"

	// DSMP is the on-display media player application every play command targets.
	DSMPAppID         = "com.webos.app.dsmp"
	LunaLaunchService = "luna://com.webos.applicationManager/launch"
)

var (
	// Outer login attempt budget for legacy displays. Captchas are random, so
	// a misread is usually fixed by just pulling a fresh one.
	MaxLoginAttempts = 5

	// Seconds. Login and content calls ride the transport default; detector
	// probes get a short leash so a dead candidate does not stall detection.
	DefaultTimeoutSeconds = 30
	ProbeTimeoutSeconds   = 3
)
