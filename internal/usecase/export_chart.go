package usecase

import (
	"bytes"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
	"github.com/aalvaropc/rashi/internal/usecase/layout"
	"github.com/aalvaropc/rashi/internal/usecase/table"
)

// ExportChart lays out a snapshot, renders it and optionally stores it.
type ExportChart struct {
	renderer ports.ChartRenderer
	store    ports.ArtifactStore
	layout   []layout.Option
}

func NewExportChart(r ports.ChartRenderer, store ports.ArtifactStore, opts ...layout.Option) *ExportChart {
	return &ExportChart{renderer: r, store: store, layout: opts}
}

// Render returns the drawn chart for s.
func (uc *ExportChart) Render(s domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := uc.renderer.Render(&buf, layout.Compute(s, uc.layout...)); err != nil {
		return nil, &domain.OpError{
			Op:   "chart.render",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return buf.Bytes(), nil
}

// Execute renders s and saves it with its table rows. The id is empty when
// no store is configured.
func (uc *ExportChart) Execute(s domain.Snapshot, oracle string) (string, []byte, error) {
	svg, err := uc.Render(s)
	if err != nil {
		return "", nil, err
	}
	if uc.store == nil {
		return "", svg, nil
	}

	id, err := uc.store.SaveChart(ports.ChartArtifact{
		Snapshot: s,
		Oracle:   oracle,
		SVG:      svg,
		Rows:     table.FormatRows(s),
	})
	if err != nil {
		return "", svg, err
	}
	return id, svg, nil
}
