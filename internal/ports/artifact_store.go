package ports

import "github.com/aalvaropc/rashi/internal/domain"

// ChartArtifact is a rendered chart plus the data it was drawn from.
type ChartArtifact struct {
	Snapshot domain.Snapshot
	Oracle   string
	SVG      []byte
	Rows     []domain.DisplayRow
}

// ArtifactStore persists exported charts.
type ArtifactStore interface {
	SaveChart(chart ChartArtifact) (id string, err error)
}
