package domain

import (
	"fmt"
	"strings"
)

// SiderealMode selects the ayanamsa used to shift tropical longitudes
// into the sidereal frame.
type SiderealMode int

const (
	// Lahiri is the primary standard (Chitrapaksha).
	Lahiri SiderealMode = iota
	Raman
	Krishnamurti
)

func (m SiderealMode) String() string {
	switch m {
	case Lahiri:
		return "lahiri"
	case Raman:
		return "raman"
	case Krishnamurti:
		return "krishnamurti"
	default:
		return "unknown"
	}
}

func (m SiderealMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseSiderealMode parses a mode name. The empty string selects Lahiri.
func ParseSiderealMode(s string) (SiderealMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lahiri":
		return Lahiri, nil
	case "raman":
		return Raman, nil
	case "krishnamurti", "kp":
		return Krishnamurti, nil
	default:
		return Lahiri, fmt.Errorf("%w: unknown sidereal mode %q (expected lahiri|raman|krishnamurti)", ErrInvalidConfig, s)
	}
}
