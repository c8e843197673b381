package domain

// House is one of the twelve 30° zodiacal signs, indexed from 0 (Mesha).
type House int

// HouseCount is the number of houses around the chart.
const HouseCount = 12

// HouseSpan is the ecliptic width of every house in degrees.
const HouseSpan = 30.0

var houseNames = [HouseCount]string{
	"Mesha",
	"Vrishabha",
	"Mithuna",
	"Karka",
	"Simha",
	"Kanya",
	"Tula",
	"Vrishchika",
	"Dhanu",
	"Makara",
	"Kumbha",
	"Meena",
}

// Element is the elemental group of a house (fire, earth, air, water).
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// ElementColors are the wedge background tones, indexed by Element.
var ElementColors = [4]string{
	Fire:  "rgba(255,182,193,0.30)",
	Earth: "rgba(144,238,144,0.30)",
	Air:   "rgba(255,255,180,0.30)",
	Water: "rgba(173,216,230,0.30)",
}

func (e Element) String() string {
	switch e {
	case Fire:
		return "fire"
	case Earth:
		return "earth"
	case Air:
		return "air"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

func (h House) Valid() bool { return h >= 0 && h < HouseCount }

func (h House) Name() string {
	if !h.Valid() {
		return ""
	}
	return houseNames[h]
}

func (h House) Element() Element { return Element(int(h) % 4) }

// StartDegree is the ecliptic longitude where the house begins.
func (h House) StartDegree() float64 { return float64(h) * HouseSpan }

// HouseNames returns a copy of the ordered house names.
func HouseNames() [HouseCount]string { return houseNames }
