package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
	"github.com/aalvaropc/rashi/internal/usecase/layout"
)

const (
	defaultSize  = 800
	marginPx     = 20
	referenceDim = 800.0
	fontFamily   = "Arial, Helvetica, sans-serif"
)

type SVGOptions struct {
	// Size is the width and height of the square canvas in pixels.
	Size int
	// Background fills the canvas when non-empty.
	Background string
	// Title is emitted as the document <title>.
	Title string
}

// SVGRenderer adapts SVG to the ChartRenderer port.
type SVGRenderer struct {
	Options SVGOptions
}

var _ ports.ChartRenderer = SVGRenderer{}

func (r SVGRenderer) Render(w io.Writer, prims []domain.Primitive) error {
	return SVG(w, prims, r.Options)
}

// SVG draws prims as a standalone SVG document.
func SVG(w io.Writer, prims []domain.Primitive, opts SVGOptions) error {
	size := opts.Size
	if size <= 0 {
		size = defaultSize
	}

	ew := &errWriter{w: w}
	c := &canvas{
		SVG:   svg.New(ew),
		cx:    float64(size) / 2,
		cy:    float64(size) / 2,
		unit:  (float64(size)/2 - marginPx) / domain.ChartRadiusMax,
		scale: float64(size) / referenceDim,
	}

	c.Start(size, size)
	if opts.Title != "" {
		c.Title(opts.Title)
	}
	if opts.Background != "" {
		c.Rect(0, 0, size, size, "fill:"+opts.Background)
	}

	c.Gstyle("font-family:" + fontFamily)
	for _, p := range prims {
		switch p.Kind {
		case domain.KindWedge:
			c.wedge(p)
		case domain.KindCircle:
			c.ring(p)
		case domain.KindSpoke, domain.KindTick:
			c.segment(p)
		case domain.KindLabel:
			c.label(p)
		case domain.KindMarker:
			c.marker(p)
		default:
			return fmt.Errorf("render: unknown primitive kind %q", p.Kind)
		}
		if ew.err != nil {
			return ew.err
		}
	}
	c.Gend()
	c.End()

	return ew.err
}

type canvas struct {
	*svg.SVG
	cx, cy float64
	unit   float64
	scale  float64
}

func (c *canvas) point(r, theta float64) (float64, float64) {
	x, y := layout.ToCartesian(r*c.unit, theta)
	return c.cx + x, c.cy + y
}

func (c *canvas) ipoint(r, theta float64) (int, int) {
	x, y := c.point(r, theta)
	return int(math.Round(x)), int(math.Round(y))
}

func (c *canvas) wedge(p domain.Primitive) {
	ox0, oy0 := c.point(p.R1, p.Theta0)
	ox1, oy1 := c.point(p.R1, p.Theta1)
	ix1, iy1 := c.point(p.R0, p.Theta1)
	ix0, iy0 := c.point(p.R0, p.Theta0)
	large := 0
	if p.Theta1-p.Theta0 > 180 {
		large = 1
	}

	// Clockwise on screen is sweep-flag 1.
	d := fmt.Sprintf("M%s %s A%s %s 0 %d 1 %s %s L%s %s A%s %s 0 %d 0 %s %s Z",
		num(ox0), num(oy0), num(p.R1*c.unit), num(p.R1*c.unit), large, num(ox1), num(oy1),
		num(ix1), num(iy1), num(p.R0*c.unit), num(p.R0*c.unit), large, num(ix0), num(iy0))
	c.Path(d, fillStyle(p.Fill)+";"+strokeStyle(p.Stroke, c.scale))
}

func (c *canvas) ring(p domain.Primitive) {
	r := int(math.Round(p.R0 * c.unit))
	c.Circle(int(math.Round(c.cx)), int(math.Round(c.cy)), r, "fill:none;"+strokeStyle(p.Stroke, c.scale))
}

func (c *canvas) segment(p domain.Primitive) {
	x0, y0 := c.ipoint(p.R0, p.Theta0)
	x1, y1 := c.ipoint(p.R1, p.Theta0)
	c.Line(x0, y0, x1, y1, strokeStyle(p.Stroke, c.scale)+";stroke-linecap:round")
}

func (c *canvas) label(p domain.Primitive) {
	x, y := c.ipoint(p.R0, p.Theta0)
	c.Text(x, y, p.Text, textStyle(p.FontSize*c.scale, "#333333", false))
}

func (c *canvas) marker(p domain.Primitive) {
	x, y := c.ipoint(p.R0, p.Theta0)
	r := int(math.Round(float64(p.Size) * c.scale / 2))

	class := "body"
	if p.Body != nil {
		class += " body-" + p.Body.String()
	}
	if p.Retrograde {
		class += " retrograde"
	}

	c.Group(`class="` + class + `"`)
	if p.Hover != "" {
		c.Title(p.Hover)
	}
	c.Circle(x, y, r, fillStyle(p.Fill)+";"+strokeStyle(p.Stroke, c.scale))
	c.Text(x, y, p.Text, textStyle(p.FontSize*c.scale, layout.MarkerTextColor, true))
	c.Gend()
}

func fillStyle(color string) string {
	if color == "" {
		return "fill:none"
	}
	rgb, alpha, ok := splitRGBA(color)
	if !ok {
		return "fill:" + color
	}
	return "fill:" + rgb + ";fill-opacity:" + num(alpha)
}

func strokeStyle(s domain.Stroke, scale float64) string {
	if s.Color == "" || s.Width <= 0 {
		return "stroke:none"
	}
	rgb, alpha, ok := splitRGBA(s.Color)
	if !ok {
		return "stroke:" + s.Color + ";stroke-width:" + num(s.Width*scale)
	}
	return "stroke:" + rgb + ";stroke-opacity:" + num(alpha) + ";stroke-width:" + num(s.Width*scale)
}

func textStyle(size float64, color string, bold bool) string {
	st := "font-size:" + num(size) + "px;fill:" + color + ";text-anchor:middle;dominant-baseline:central"
	if bold {
		st += ";font-weight:bold"
	}
	return st
}

// splitRGBA turns "rgba(r,g,b,a)" into "rgb(r,g,b)" and a. SVG 1.1 has no
// alpha channel in paint values.
func splitRGBA(color string) (string, float64, bool) {
	s := strings.TrimSpace(color)
	if !strings.HasPrefix(s, "rgba(") || !strings.HasSuffix(s, ")") {
		return "", 0, false
	}
	parts := strings.Split(s[len("rgba("):len(s)-1], ",")
	if len(parts) != 4 {
		return "", 0, false
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return "", 0, false
	}
	for i := range parts[:3] {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return "rgb(" + strings.Join(parts[:3], ",") + ")", a, true
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
