package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aalvaropc/rashi/internal/domain"
	uctable "github.com/aalvaropc/rashi/internal/usecase/table"
)

// Table renders rows with the default theme. Retrograde rows are highlighted.
func Table(rows []domain.DisplayRow) string {
	return TableWithTheme(rows, DefaultTheme())
}

func TableWithTheme(rows []domain.DisplayRow, th Theme) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, uctable.Cells(r))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(th.Border).
		Headers(uctable.Header...).
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return th.Header
			case row >= 0 && row < len(rows) && rows[row].Retrograde == "Yes":
				return th.Retro
			default:
				return th.Cell
			}
		})

	return t.String()
}

// Caption renders a one-line summary above the table.
func Caption(s domain.Snapshot, oracle string, th Theme) string {
	title := th.Title.Render(s.At().Format("2006-01-02 15:04 UTC"))
	meta := th.Faint.Render(" " + s.Mode().String() + " · " + oracle)
	return title + meta
}
