package ports

import (
	"io"

	"github.com/aalvaropc/rashi/internal/domain"
)

// ChartRenderer draws layout primitives onto a rendering surface.
type ChartRenderer interface {
	Render(w io.Writer, prims []domain.Primitive) error
}
