// Package table formats a Snapshot as display rows.
package table

import "github.com/aalvaropc/rashi/internal/domain"

// Header lists the column titles in row order.
var Header = []string{"Planet", "House", "Position", "Speed", "Retrograde"}

// FormatRows returns one row per present body, in snapshot order.
func FormatRows(s domain.Snapshot) []domain.DisplayRow {
	entries := s.Entries()
	rows := make([]domain.DisplayRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row(e.Body, e.Position))
	}
	return rows
}

func Row(b domain.Body, p domain.Position) domain.DisplayRow {
	retro := "No"
	if p.Retrograde() {
		retro = "Yes"
	}
	return domain.DisplayRow{
		Planet:     b.Label(),
		House:      p.House().Name(),
		Position:   domain.FormatInHouse(p.InHouse()),
		Speed:      p.SpeedString(),
		Retrograde: retro,
	}
}

// Cells flattens a row in Header order.
func Cells(r domain.DisplayRow) []string {
	return []string{r.Planet, r.House, r.Position, r.Speed, r.Retrograde}
}
