package domain

import "fmt"

// Position is a body's sidereal ecliptic longitude and its daily motion.
type Position struct {
	Longitude float64 `json:"longitude"` // degrees, [0, 360)
	Speed     float64 `json:"speed"`     // degrees/day, negative when retrograde
}

// NewPosition builds a Position with the longitude normalized.
func NewPosition(lon, speed float64) Position {
	return Position{Longitude: Normalize360(lon), Speed: speed}
}

func (p Position) Retrograde() bool { return p.Speed < 0 }

func (p Position) House() House { return HouseIndex(p.Longitude) }

func (p Position) InHouse() float64 { return DegreesInHouse(p.Longitude) }

// SpeedString formats the speed with four decimals, sign preserved.
func (p Position) SpeedString() string { return fmt.Sprintf("%.4f", p.Speed) }

// PositionResult is the outcome of fetching one body: either a Position or an error.
type PositionResult struct {
	Body     Body
	Position Position
	Err      error
}

func (r PositionResult) OK() bool { return r.Err == nil }

// Opposite returns the position 180° away with the same speed.
func (p Position) Opposite() Position {
	return Position{Longitude: Normalize360(p.Longitude + 180), Speed: p.Speed}
}
