package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuilog/logtail/internal/worker"
)

// levelNames mirrors the order Ctrl-Q/W/E/R toggle in (spec §6), used to
// render the status line's level-mask indicator.
var levelNames = [4]string{"DEBUG", "INFO", "WARN", "ERROR"}

// renderMain draws the status line, the viewport, and the query line —
// the teacher's View splits the same three bands (header, body, footer)
// for its container list.
func (m *Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderStatusLine())
	b.WriteByte('\n')

	frame := m.viewport.Render(m.snapshot, m.viewportHeight(), m.width, m.wrap)
	if frame.SkipRequest != nil {
		m.commands <- worker.SetSkip{Skip: *frame.SkipRequest}
	}
	for _, row := range frame.Rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	for i := len(frame.Rows); i < m.viewportHeight(); i++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.renderQueryLine())

	if m.toastMessage != "" {
		b.WriteByte('\n')
		if m.toastIsError {
			b.WriteString(toastErrorStyle.Render(m.toastMessage))
		} else {
			b.WriteString(toastSuccessStyle.Render(m.toastMessage))
		}
	}

	return b.String()
}

func (m *Model) renderStatusLine() string {
	spinner := spinnerFrames[m.spinnerFrame]

	var mask strings.Builder
	for i, name := range levelNames {
		style := dimStyle
		if m.levels[levelIndex(name)] {
			style = levelStyleFor(name)
		}
		if i > 0 {
			mask.WriteByte(' ')
		}
		mask.WriteString(style.Render(name))
	}

	var totalRate float64
	for name := range m.activeReaders {
		totalRate += m.rateTracker.Rate(name)
	}

	left := titleStyle.Render(spinner+" logtail") + "  " + mask.String()
	right := fmt.Sprintf("size=%d length=%d rate=%.1f/s elapsed=%s", m.size, m.length, totalRate, m.elapsed.Truncate(1e6))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderQueryLine() string {
	wrapIndicator := "wrap"
	if !m.wrap {
		wrapIndicator = "truncate"
	}
	return dimStyle.Render("> ") + m.queryInput + dimStyle.Render("  ["+wrapIndicator+"]")
}

// renderSelect draws the bordered pod/topic candidate list with
// checkboxes, the overlay spec §6 describes for Ctrl-P/Ctrl-K.
func (m *Model) renderSelect() string {
	candidates := m.visibleCandidates()

	title := "Select pods"
	if m.selectMode == selectTopic {
		title = "Select topics"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	if len(candidates) == 0 {
		b.WriteString(dimStyle.Render("(none discovered)"))
	}

	for i, c := range candidates {
		box := "[ ]"
		if m.selectChecked[c.Name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s  %.1f/s", box, c.Name, m.rateTracker.Rate(c.Name))
		if i == m.selectCursor {
			line = selectedLineStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(dimStyle.Render("\nEnter: toggle  Ctrl-A: select all  Esc: apply"))

	return selectBoxStyle.Render(b.String())
}

func levelIndex(name string) int {
	switch name {
	case "INFO":
		return 0
	case "WARN":
		return 1
	case "ERROR":
		return 2
	case "DEBUG":
		return 3
	default:
		return 0
	}
}

func levelStyleFor(name string) lipgloss.Style {
	switch name {
	case "INFO":
		return levelInfoStyle
	case "WARN":
		return levelWarnStyle
	case "ERROR":
		return levelErrorStyle
	case "DEBUG":
		return levelDebugStyle
	default:
		return dimStyle
	}
}
