package domain

// PrimitiveKind enumerates the drawable chart elements.
type PrimitiveKind string

const (
	KindWedge  PrimitiveKind = "wedge"
	KindCircle PrimitiveKind = "circle"
	KindSpoke  PrimitiveKind = "spoke"
	KindTick   PrimitiveKind = "tick"
	KindLabel  PrimitiveKind = "label"
	KindMarker PrimitiveKind = "marker"
)

// ChartRadiusMax is the outer bound of the radial axis.
const ChartRadiusMax = 1.2

// Stroke describes a line color and width.
type Stroke struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Primitive is one drawable element in polar coordinates.
//
// Angles are chart angles in degrees: 0 is the top of the chart and angles
// grow clockwise, so ecliptic longitude maps directly onto Theta.
// Radii lie in [0, ChartRadiusMax].
type Primitive struct {
	Kind PrimitiveKind `json:"kind"`

	// Wedge: annular sector [R0,R1] x [Theta0,Theta1].
	// Spoke/tick: radial segment R0..R1 at Theta0.
	// Circle: ring at R0.
	// Label/marker: point at (R0, Theta0).
	R0     float64 `json:"r0"`
	R1     float64 `json:"r1,omitempty"`
	Theta0 float64 `json:"theta0"`
	Theta1 float64 `json:"theta1,omitempty"`

	Fill     string  `json:"fill,omitempty"`
	Stroke   Stroke  `json:"stroke"`
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	// Marker only.
	Body       *Body  `json:"body,omitempty"`
	Retrograde bool   `json:"retrograde,omitempty"`
	Size       int    `json:"size,omitempty"`
	Hover      string `json:"hover,omitempty"`
}
