// Package export writes rendered charts and their data to the workspace
// charts directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

const defaultChartsDir = "charts"

// Store saves each chart as <UTC ts>_<mode>.svg plus a .json sidecar.
type Store struct {
	rootDir    string
	chartsDir  string
	writeIndex bool
	now        func() time.Time
}

type Option func(*Store)

// WithIndex enables a simple JSONL index: charts/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *Store) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(root string, cfg domain.Config, opts ...Option) *Store {
	dir := cfg.Paths.ChartsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultChartsDir
	}

	s := &Store{
		rootDir:   root,
		chartsDir: dir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*Store)(nil)

// Dir is the absolute or root-relative charts directory.
func (s *Store) Dir() string {
	if filepath.IsAbs(s.chartsDir) {
		return s.chartsDir
	}
	return filepath.Join(s.rootDir, s.chartsDir)
}

type chartDoc struct {
	ID       string              `json:"id"`
	Oracle   string              `json:"oracle,omitempty"`
	SavedAt  time.Time           `json:"saved_at"`
	Snapshot domain.Snapshot     `json:"snapshot"`
	Rows     []domain.DisplayRow `json:"rows"`
	SVGFile  string              `json:"svg_file,omitempty"`
}

func (s *Store) SaveChart(chart ports.ChartArtifact) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "export.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := chart.Snapshot.At()
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	mode := slugify(chart.Snapshot.Mode().String())
	if mode == "" {
		mode = "chart"
	}
	id := fmt.Sprintf("%s_%s", ts.Format("20060102T1504Z"), mode)

	doc := chartDoc{
		ID:       id,
		Oracle:   chart.Oracle,
		SavedAt:  s.now().UTC(),
		Snapshot: chart.Snapshot,
		Rows:     chart.Rows,
	}
	if doc.Rows == nil {
		doc.Rows = []domain.DisplayRow{}
	}

	if len(chart.SVG) > 0 {
		doc.SVGFile = id + ".svg"
		if err := writeAtomic(filepath.Join(dir, doc.SVGFile), chart.SVG); err != nil {
			return "", err
		}
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "export.marshal",
			Kind: domain.KindExecution,
			Path: filepath.Join(dir, id+".json"),
			Err:  err,
		}
	}
	if err := writeAtomic(filepath.Join(dir, id+".json"), b); err != nil {
		return "", err
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, doc)
	}
	return id, nil
}

// writeAtomic writes to a temp file and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &domain.OpError{
			Op:   "export.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "export.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

func (s *Store) appendIndex(dir string, doc chartDoc) error {
	type idx struct {
		ID     string    `json:"id"`
		File   string    `json:"file"`
		SVG    string    `json:"svg,omitempty"`
		Mode   string    `json:"sidereal_mode"`
		Oracle string    `json:"oracle,omitempty"`
		At     time.Time `json:"at"`
		Bodies int       `json:"bodies"`
	}
	line, err := json.Marshal(idx{
		ID:     doc.ID,
		File:   doc.ID + ".json",
		SVG:    doc.SVGFile,
		Mode:   doc.Snapshot.Mode().String(),
		Oracle: doc.Oracle,
		At:     doc.Snapshot.At(),
		Bodies: doc.Snapshot.Len(),
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
