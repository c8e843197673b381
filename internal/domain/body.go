package domain

import (
	"fmt"
	"strings"
)

// Body identifies one of the nine tracked celestial bodies.
// The set is closed; the zero value is the Sun.
type Body uint8

const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// BodyCount is the number of tracked bodies.
const BodyCount = 9

// OracleCode is the numeric body identifier understood by an ephemeris oracle.
// Values follow the Swiss Ephemeris numbering.
type OracleCode int

const (
	CodeSun      OracleCode = 0
	CodeMoon     OracleCode = 1
	CodeMercury  OracleCode = 2
	CodeVenus    OracleCode = 3
	CodeMars     OracleCode = 4
	CodeJupiter  OracleCode = 5
	CodeSaturn   OracleCode = 6
	CodeMeanNode OracleCode = 10
)

type bodyInfo struct {
	name    string
	symbol  string
	color   string
	code    OracleCode
	hasCode bool
}

var bodies = [BodyCount]bodyInfo{
	Sun:     {name: "Sun", symbol: "☉", color: "#CC4400", code: CodeSun, hasCode: true},
	Moon:    {name: "Moon", symbol: "☽", color: "#666666", code: CodeMoon, hasCode: true},
	Mars:    {name: "Mars", symbol: "♂", color: "#990000", code: CodeMars, hasCode: true},
	Mercury: {name: "Mercury", symbol: "☿", color: "#006600", code: CodeMercury, hasCode: true},
	Jupiter: {name: "Jupiter", symbol: "♃", color: "#CC9900", code: CodeJupiter, hasCode: true},
	Venus:   {name: "Venus", symbol: "♀", color: "#CC0066", code: CodeVenus, hasCode: true},
	Saturn:  {name: "Saturn", symbol: "♄", color: "#000099", code: CodeSaturn, hasCode: true},
	Rahu:    {name: "Rahu", symbol: "☊", color: "#4D2D00", code: CodeMeanNode, hasCode: true},
	Ketu:    {name: "Ketu", symbol: "☋", color: "#4D2D00"},
}

// AllBodies lists every tracked body in canonical order.
var AllBodies = [BodyCount]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// ObservedBodies are the bodies queried from the oracle directly.
// Ketu is derived from Rahu and never queried.
var ObservedBodies = [BodyCount - 1]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu}

func (b Body) Valid() bool { return int(b) < BodyCount }

func (b Body) Name() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bodies[b].name
}

func (b Body) Symbol() string {
	if !b.Valid() {
		return "?"
	}
	return bodies[b].symbol
}

// Color is the marker fill color used on the chart.
func (b Body) Color() string {
	if !b.Valid() {
		return "gray"
	}
	return bodies[b].color
}

// OracleCode returns the oracle identifier for b. Ketu has none.
func (b Body) OracleCode() (OracleCode, bool) {
	if !b.Valid() {
		return 0, false
	}
	info := bodies[b]
	return info.code, info.hasCode
}

// Label is the table label, e.g. "☉ Sun".
func (b Body) Label() string {
	return b.Symbol() + " " + b.Name()
}

func (b Body) String() string { return strings.ToLower(b.Name()) }

// MarshalText encodes the body as its lowercase name.
func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a body name written by MarshalText.
func (b *Body) UnmarshalText(p []byte) error {
	parsed, ok := ParseBody(string(p))
	if !ok {
		return fmt.Errorf("unknown body %q", p)
	}
	*b = parsed
	return nil
}

// ParseBody resolves a body by case-insensitive name.
func ParseBody(s string) (Body, bool) {
	s = strings.TrimSpace(s)
	for _, b := range AllBodies {
		if strings.EqualFold(b.Name(), s) {
			return b, true
		}
	}
	return 0, false
}
