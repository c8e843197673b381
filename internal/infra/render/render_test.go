package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/usecase/layout"
	uctable "github.com/aalvaropc/rashi/internal/usecase/table"
)

func sampleSnapshot() domain.Snapshot {
	return domain.NewSnapshot(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), domain.Lahiri, []domain.PositionResult{
		{Body: domain.Sun, Position: domain.Position{Longitude: 255.85, Speed: 1.0192}},
		{Body: domain.Mercury, Position: domain.Position{Longitude: 232.0, Speed: -0.35}},
		{Body: domain.Rahu, Position: domain.Position{Longitude: 10.5, Speed: -0.053}},
	})
}

func TestSVG_WellFormed(t *testing.T) {
	var buf bytes.Buffer
	err := SVG(&buf, layout.Compute(sampleSnapshot()), SVGOptions{Size: 400, Title: "Sky <test>"})
	require.NoError(t, err)

	out := buf.String()
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			require.ErrorContains(t, err, "EOF")
			break
		}
	}

	assert.Contains(t, out, `width="400"`)
	assert.Contains(t, out, "Mesha")
	assert.Contains(t, out, "Meena")
	assert.Equal(t, 4, strings.Count(out, `class="body`))
	assert.Equal(t, 3, strings.Count(out, "retrograde"))
	assert.Contains(t, out, "Sky &lt;test&gt;")
	assert.Contains(t, out, "fill-opacity:0.3")
}

func TestSVG_DefaultSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, nil, SVGOptions{}))
	assert.Contains(t, buf.String(), `width="800"`)
}

func TestSVG_UnknownKind(t *testing.T) {
	var buf bytes.Buffer
	err := SVG(&buf, []domain.Primitive{{Kind: "blob"}}, SVGOptions{})
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVG_WriteError(t *testing.T) {
	err := SVGRenderer{}.Render(failingWriter{}, layout.Compute(sampleSnapshot()))
	require.EqualError(t, err, "disk full")
}

func TestSplitRGBA(t *testing.T) {
	rgb, a, ok := splitRGBA("rgba(255,182,193,0.30)")
	require.True(t, ok)
	assert.Equal(t, "rgb(255,182,193)", rgb)
	assert.InDelta(t, 0.3, a, 1e-12)

	_, _, ok = splitRGBA("#CC4400")
	assert.False(t, ok)
}

func TestTable_ContainsRows(t *testing.T) {
	rows := uctable.FormatRows(sampleSnapshot())
	out := TableWithTheme(rows, PlainTheme())

	for _, h := range uctable.Header {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "☉ Sun")
	assert.Contains(t, out, "Dhanu")
	assert.Contains(t, out, "15° 51'")
	assert.Contains(t, out, "☋ Ketu")
	assert.Equal(t, 3, strings.Count(out, "Yes"))
}

func TestTable_Empty(t *testing.T) {
	out := Table(nil)
	assert.Contains(t, out, "Planet")
}
