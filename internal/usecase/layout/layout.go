// Package layout turns a Snapshot into chart primitives in polar
// coordinates. It performs no I/O and never fails.
package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/aalvaropc/rashi/internal/domain"
)

// Radii and sizes of the chart, in chart units (outer ring = 1.0).
const (
	RingInner = 0.80
	RingOuter = 1.00
	LabelR    = 0.90

	TickMinorR = 1.03
	TickMajorR = 1.06
	TickLabelR = 1.11
	TickStep   = 5

	MarkerBaseR = 0.65
	MarkerStepR = 0.08
	MarkerSize  = 24

	HouseFontSize  = 14
	TickFontSize   = 10
	MarkerFontSize = 16
)

const (
	lineColor   = "gray"
	retroColor  = "#8B0000"
	transparent = "rgba(0,0,0,0)"
)

// MarkerTextColor is the glyph color drawn on top of body markers.
const MarkerTextColor = "white"

// Stacking orders for bodies sharing a house.
const (
	StackDiscovery   = domain.StackDiscovery
	StackByLongitude = domain.StackLongitude
)

type options struct {
	stack domain.StackOrder
}

type Option func(*options)

// WithStackOrder selects how bodies in the same house are stacked inward.
func WithStackOrder(o domain.StackOrder) Option {
	return func(opts *options) {
		if o == StackByLongitude {
			opts.stack = o
		} else {
			opts.stack = StackDiscovery
		}
	}
}

// Compute returns the full primitive list for s: house wedges, border
// circles, spokes with house labels, degree ticks, then body markers.
func Compute(s domain.Snapshot, opts ...Option) []domain.Primitive {
	o := options{stack: StackDiscovery}
	for _, opt := range opts {
		opt(&o)
	}

	prims := make([]domain.Primitive, 0, 12+2+24+72+36+s.Len())
	prims = append(prims, wedges()...)
	prims = append(prims, borders()...)
	prims = append(prims, spokes()...)
	prims = append(prims, ticks()...)
	prims = append(prims, markers(s, o.stack)...)
	return prims
}

func wedges() []domain.Primitive {
	out := make([]domain.Primitive, 0, domain.HouseCount)
	for i := 0; i < domain.HouseCount; i++ {
		h := domain.House(i)
		out = append(out, domain.Primitive{
			Kind:   domain.KindWedge,
			R0:     RingInner,
			R1:     RingOuter,
			Theta0: h.StartDegree(),
			Theta1: h.StartDegree() + domain.HouseSpan,
			Fill:   domain.ElementColors[h.Element()],
			Stroke: domain.Stroke{Color: transparent},
		})
	}
	return out
}

func borders() []domain.Primitive {
	return []domain.Primitive{
		{Kind: domain.KindCircle, R0: RingOuter, Stroke: domain.Stroke{Color: lineColor, Width: 2}},
		{Kind: domain.KindCircle, R0: RingInner, Stroke: domain.Stroke{Color: lineColor, Width: 2}},
	}
}

func spokes() []domain.Primitive {
	out := make([]domain.Primitive, 0, 2*domain.HouseCount)
	for i := 0; i < domain.HouseCount; i++ {
		h := domain.House(i)
		start := h.StartDegree()
		out = append(out,
			domain.Primitive{
				Kind:   domain.KindSpoke,
				R0:     RingInner,
				R1:     RingOuter,
				Theta0: start,
				Stroke: domain.Stroke{Color: lineColor, Width: 2},
			},
			domain.Primitive{
				Kind:     domain.KindLabel,
				R0:       LabelR,
				Theta0:   start + domain.HouseSpan/2,
				Text:     h.Name(),
				FontSize: HouseFontSize,
			},
		)
	}
	return out
}

// ticks marks every 5°. Multiples of 10 within a house are major and
// carry the in-house degree as a label.
func ticks() []domain.Primitive {
	var out []domain.Primitive
	for deg := 0; deg < 360; deg += TickStep {
		inHouse := deg % 30
		major := inHouse%10 == 0

		t := domain.Primitive{
			Kind:   domain.KindTick,
			R0:     RingOuter,
			R1:     TickMinorR,
			Theta0: float64(deg),
			Stroke: domain.Stroke{Color: lineColor, Width: 1},
		}
		if major {
			t.R1 = TickMajorR
			t.Stroke.Width = 2
		}
		out = append(out, t)

		if major {
			out = append(out, domain.Primitive{
				Kind:     domain.KindLabel,
				R0:       TickLabelR,
				Theta0:   float64(deg),
				Text:     fmt.Sprintf("%d°", inHouse),
				FontSize: TickFontSize,
			})
		}
	}
	return out
}

func markers(s domain.Snapshot, order domain.StackOrder) []domain.Primitive {
	var buckets [domain.HouseCount][]domain.BodyPosition
	for _, e := range s.Entries() {
		h := e.Position.House()
		buckets[h] = append(buckets[h], e)
	}

	if order == StackByLongitude {
		for h := range buckets {
			sort.SliceStable(buckets[h], func(i, j int) bool {
				return buckets[h][i].Position.Longitude < buckets[h][j].Position.Longitude
			})
		}
	}

	// Emit in snapshot order so marker order does not depend on stacking.
	var stackIdx [domain.BodyCount]int
	for _, bucket := range buckets {
		for i, e := range bucket {
			stackIdx[e.Body] = i
		}
	}

	out := make([]domain.Primitive, 0, s.Len())
	for _, e := range s.Entries() {
		out = append(out, marker(e, stackIdx[e.Body]))
	}
	return out
}

func marker(e domain.BodyPosition, idx int) domain.Primitive {
	b := e.Body
	p := e.Position
	retro := p.Retrograde()

	stroke := domain.Stroke{Color: lineColor, Width: 1}
	if retro {
		stroke = domain.Stroke{Color: retroColor, Width: 3}
	}

	return domain.Primitive{
		Kind:       domain.KindMarker,
		R0:         StackRadius(idx),
		Theta0:     p.Longitude,
		Fill:       b.Color(),
		Stroke:     stroke,
		Text:       b.Symbol(),
		FontSize:   MarkerFontSize,
		Body:       &b,
		Retrograde: retro,
		Size:       MarkerSize,
		Hover:      HoverText(b, p),
	}
}

// StackRadius is the marker radius of the idx-th body within a house.
func StackRadius(idx int) float64 {
	return MarkerBaseR - float64(idx)*MarkerStepR
}

// HoverText is the three-line tooltip for a body marker.
func HoverText(b domain.Body, p domain.Position) string {
	retro := ""
	if p.Retrograde() {
		retro = " (℞)"
	}
	return fmt.Sprintf("%s\n%s\nSpeed : %s°/d%s",
		b.Name(), domain.FormatInHouse(p.InHouse()), p.SpeedString(), retro)
}

// ToCartesian maps a chart point to x/y with 0° at the top, angles growing
// clockwise and y pointing down, as on a screen.
func ToCartesian(r, theta float64) (x, y float64) {
	rad := theta * math.Pi / 180
	return r * math.Sin(rad), -r * math.Cos(rad)
}
