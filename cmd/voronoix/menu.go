package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/lintang-b-s/Voronoix/pkg/engine"
	"github.com/lintang-b-s/Voronoix/pkg/export"
	"github.com/lintang-b-s/Voronoix/pkg/visualizer"
)

type menuState uint8

const (
	stateMenu menuState = iota
	stateFilePrompt
)

var menuItems = []string{
	"1. Run next iteration",
	"2. Save current state to CSV",
	"3. Show current state plot",
	"4. Exit",
}

// menuModel interactive driver. every action runs synchronously on the engine.
type menuModel struct {
	engine *engine.Engine
	outDir string

	state   menuState
	input   string
	message string
	failed  bool
	plot    string
	quit    bool
}

func newMenuModel(eng *engine.Engine, outDir string) menuModel {
	return menuModel{engine: eng, outDir: outDir}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		m.quit = true
		return m, tea.Quit
	}
	if m.state == stateFilePrompt {
		return m.updatePrompt(key)
	}

	switch key.String() {
	case "1":
		res := m.engine.AdvancePass()
		m.setMessage(summary(res), false)
	case "2":
		m.state = stateFilePrompt
		m.input = ""
		m.message = ""
	case "3":
		m.showPlot()
	case "4", "q", "esc":
		m.quit = true
		return m, tea.Quit
	default:
		m.setMessage("Invalid choice. Please try again.", true)
	}
	return m, nil
}

func (m menuModel) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.state = stateMenu
		m.input = ""
	case tea.KeyEnter:
		m.state = stateMenu
		m.saveCSV(strings.TrimSpace(m.input))
		m.input = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			r := []rune(m.input)
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m *menuModel) saveCSV(filename string) {
	if filename == "" {
		filename = pkg.DEFAULT_CSV_FILE
	}
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(m.outDir, filename)
	}
	written, err := export.SaveCSV(filename, m.engine.Snapshot().Labels)
	if err != nil {
		m.setMessage(err.Error(), true)
		return
	}
	m.setMessage("Saved to "+written, false)
}

func (m *menuModel) showPlot() {
	snap := m.engine.Snapshot()
	m.plot = visualizer.RenderTerminal(snap)

	filename := filepath.Join(m.outDir, fmt.Sprintf("pass_%03d.png", snap.Pass))
	if err := visualizer.SavePNG(filename, snap, visualizer.DefaultTitle(snap)); err != nil {
		m.setMessage(err.Error(), true)
		return
	}
	m.setMessage("Plot saved to "+filename, false)
}

func (m *menuModel) setMessage(msg string, failed bool) {
	m.message = msg
	m.failed = failed
}

func (m menuModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	if m.plot != "" {
		b.WriteString(m.plot)
		b.WriteString("\n")
	}

	b.WriteString(styleTitle.Render(fmt.Sprintf("Voronoix  pass %d", m.engine.Pass())))
	b.WriteString("\n\n")
	for _, item := range menuItems {
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.state == stateFilePrompt {
		b.WriteString(fmt.Sprintf("Enter filename (default %s): %s", pkg.DEFAULT_CSV_FILE, m.input))
		b.WriteString(styleDim.Render("█"))
		b.WriteString("\n")
		return b.String()
	}

	if m.message != "" {
		if m.failed {
			b.WriteString(styleErr.Render(m.message))
		} else {
			b.WriteString(styleOK.Render(m.message))
		}
		b.WriteString("\n")
	}
	b.WriteString(styleDim.Render("Enter your choice: "))
	return b.String()
}
