package visualizer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lintang-b-s/Voronoix/pkg"
	da "github.com/lintang-b-s/Voronoix/pkg/datastructure"
)

const (
	cellBlock      = "██"
	unassignedCell = "··"
)

var (
	styleTitle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleUnassigned = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderTerminal draws the snapshot as two-character coloured blocks, one line per row.
func RenderTerminal(snap da.GridSnapshot) string {
	colors := LabelColors(snap.NumSources)
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render(DefaultTitle(snap)))
	sb.WriteByte('\n')
	for _, row := range snap.Labels {
		for _, l := range row {
			if l == int(pkg.UNASSIGNED) || l < 0 || l >= len(styles) {
				sb.WriteString(styleUnassigned.Render(unassignedCell))
				continue
			}
			sb.WriteString(styles[l].Render(cellBlock))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
