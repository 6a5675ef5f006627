package unified

// DisplayType tags which vendor API generation a display speaks.
type DisplayType int

const (
	Modern DisplayType = iota
	Legacy
)

func (t DisplayType) String() string {
	switch t {
	case Legacy:
		return "legacy"
	default:
		return "modern"
	}
}

func ParseDisplayType(value string) (DisplayType, bool) {
	switch value {
	case "modern":
		return Modern, true
	case "legacy":
		return Legacy, true
	}
	return Modern, false
}

// DisplayIdentity pins a display to one API variant and port. Immutable once
// resolved; every authenticated call needs one.
type DisplayIdentity struct {
	Type DisplayType
	Port int
}

// loginFlow is the capability both generation-specific clients implement.
// The unified client holds whichever one the identity selects, so dispatch
// is a method call, not a string comparison.
type loginFlow interface {
	Login() error
	Play(reference string) error
	Authenticated() bool
}
