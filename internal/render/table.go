package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the table renderer.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	sepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
	emptyStyle  = lipgloss.NewStyle().Italic(true).Padding(0, 1)
	// BannerStyle renders the success message.
	BannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	// ErrorStyle renders field errors.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

type tableRenderer struct{}

func (r *tableRenderer) Render(v *View) ([]byte, error) {
	cells := make([][]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		cells = append(cells, []string{
			strconv.Itoa(row.Number),
			row.Record.Name,
			row.Record.Contact,
			row.Record.Email,
			row.Record.Age,
		})
	}

	widths := make([]int, len(Headers))
	for i, h := range Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	// lipgloss Width includes padding
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	sep := sepStyle.Render("|")
	writeLine := func(style lipgloss.Style, row []string) {
		for i, c := range row {
			sb.WriteString(style.Width(widths[i]).Render(c))
			if i < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeLine(headerStyle, Headers)
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	if len(cells) == 0 {
		sb.WriteString(emptyStyle.Render(v.Empty))
		sb.WriteString("\n")
		return []byte(sb.String()), nil
	}
	for _, row := range cells {
		writeLine(cellStyle, row)
	}
	return []byte(sb.String()), nil
}
