package domain

import (
	"time"

	json "github.com/goccy/go-json"
)

// BodyPosition pairs a body with its position inside a snapshot.
type BodyPosition struct {
	Body     Body     `json:"body"`
	Position Position `json:"position"`
}

// Snapshot holds the positions computed for one query instant.
// Bodies that could not be computed are absent. Iteration order is the
// canonical body order. A Snapshot is immutable once built.
type Snapshot struct {
	at      time.Time
	mode    SiderealMode
	entries []BodyPosition
	index   [BodyCount]int8
}

// NewSnapshot builds a snapshot from fetch results, dropping failures and
// deriving Ketu from Rahu. Results may arrive in any order.
func NewSnapshot(at time.Time, mode SiderealMode, results []PositionResult) Snapshot {
	var found [BodyCount]*Position
	for i := range results {
		r := results[i]
		if !r.OK() || !r.Body.Valid() || r.Body == Ketu {
			continue
		}
		p := NewPosition(r.Position.Longitude, r.Position.Speed)
		found[r.Body] = &p
	}
	if rahu := found[Rahu]; rahu != nil {
		k := rahu.Opposite()
		found[Ketu] = &k
	}

	s := Snapshot{at: at.UTC(), mode: mode}
	for i := range s.index {
		s.index[i] = -1
	}
	for _, b := range AllBodies {
		if p := found[b]; p != nil {
			s.index[b] = int8(len(s.entries))
			s.entries = append(s.entries, BodyPosition{Body: b, Position: *p})
		}
	}
	return s
}

// At is the UTC instant the snapshot was computed for.
func (s Snapshot) At() time.Time { return s.at }

func (s Snapshot) Mode() SiderealMode { return s.mode }

func (s Snapshot) Len() int { return len(s.entries) }

// Get returns the position of b and whether it is present.
func (s Snapshot) Get(b Body) (Position, bool) {
	if !b.Valid() || len(s.entries) == 0 {
		return Position{}, false
	}
	i := s.index[b]
	if i < 0 {
		return Position{}, false
	}
	return s.entries[i].Position, true
}

func (s Snapshot) Has(b Body) bool {
	_, ok := s.Get(b)
	return ok
}

// Entries returns a copy of the present entries in canonical order.
func (s Snapshot) Entries() []BodyPosition {
	out := make([]BodyPosition, len(s.entries))
	copy(out, s.entries)
	return out
}

// Missing lists tracked bodies absent from the snapshot.
func (s Snapshot) Missing() []Body {
	var out []Body
	for _, b := range AllBodies {
		if !s.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

type snapshotJSON struct {
	At     time.Time      `json:"at"`
	Mode   SiderealMode   `json:"sidereal_mode"`
	Bodies []BodyPosition `json:"bodies"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{At: s.at, Mode: s.mode, Bodies: s.Entries()})
}

// Bodies lists the present bodies in canonical order.
func (s Snapshot) Bodies() []Body {
	out := make([]Body, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Body)
	}
	return out
}
