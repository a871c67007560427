package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/query"
	"github.com/tuilog/logtail/internal/source"
	"github.com/tuilog/logtail/internal/worker"
)

// handleKeyPress routes to the select overlay or the main view, the same
// two-level dispatch the teacher's handlers.go uses for filterMode vs.
// view-specific handling.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selectMode != selectNone {
		return m.handleSelectKeys(msg)
	}
	return m.handleMainKeys(msg)
}

// handleMainKeys implements the engine-side key bindings from spec §6:
// Up/Down scroll, Enter returns to follow, query-line editing, the
// Ctrl-Q/W/E/R level toggles, Ctrl-L wrap toggle, Ctrl-P/Ctrl-K enter a
// select overlay, Ctrl-C exits.
func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyUp:
		m.viewport.KeyUp()
		return m, nil

	case tea.KeyDown:
		if skip := m.viewport.KeyDown(); skip != nil {
			m.commands <- worker.SetSkip{Skip: *skip}
		}
		return m, nil

	case tea.KeyEnter:
		m.commands <- worker.SetSkip{Skip: m.viewport.KeyEnter()}
		return m, nil

	case tea.KeyCtrlQ:
		return m, m.toggleLevel(logline.DEBUG)
	case tea.KeyCtrlW:
		return m, m.toggleLevel(logline.INFO)
	case tea.KeyCtrlE:
		return m, m.toggleLevel(logline.WARN)
	case tea.KeyCtrlR:
		return m, m.toggleLevel(logline.ERROR)

	case tea.KeyCtrlL:
		m.wrap = !m.wrap
		return m, nil

	case tea.KeyCtrlP:
		return m, m.enterSelect(source.KindPod)
	case tea.KeyCtrlK:
		return m, m.enterSelect(source.KindTopic)

	case tea.KeyBackspace:
		if m.queryCursor > 0 {
			runes := []rune(m.queryInput)
			m.queryInput = string(append(runes[:m.queryCursor-1], runes[m.queryCursor:]...))
			m.queryCursor--
			m.applyQuery()
		}
		return m, nil

	case tea.KeyLeft:
		if m.queryCursor > 0 {
			m.queryCursor--
		}
		return m, nil

	case tea.KeyRight:
		if m.queryCursor < len([]rune(m.queryInput)) {
			m.queryCursor++
		}
		return m, nil

	case tea.KeySpace:
		m.insertQueryRune(' ')
		return m, nil

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.insertQueryRune(r)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) toggleLevel(l logline.Level) tea.Cmd {
	m.levels[int(l)] = !m.levels[int(l)]
	m.commands <- worker.ToggleLevel{Level: l}
	return nil
}

// insertQueryRune inserts r at the cursor and recompiles the live query,
// since the query line is applied on every keystroke rather than on
// Enter (spec §6: Enter is reserved for returning to follow mode).
func (m *Model) insertQueryRune(r rune) {
	runes := []rune(m.queryInput)
	runes = append(runes[:m.queryCursor], append([]rune{r}, runes[m.queryCursor:]...)...)
	m.queryInput = string(runes)
	m.queryCursor++
	m.applyQuery()
}

// applyQuery splits the query line into positive/negative tokens (spec
// §4.D) and pushes both onto the Worker's command channel.
func (m *Model) applyQuery() {
	positive, negatives := query.SplitFilterInput(m.queryInput)
	m.commands <- worker.FilterRegex{Pattern: positive}
	m.commands <- worker.FilterNotRegexes{Patterns: negatives}
}

// enterSelect opens the pod or topic select overlay, pre-checking
// whichever sources of that kind already have an active Reader.
func (m *Model) enterSelect(kind source.Kind) tea.Cmd {
	if kind == source.KindPod {
		m.selectMode = selectPod
	} else {
		m.selectMode = selectTopic
	}
	m.selectCursor = 0
	m.selectChecked = make(map[string]bool)
	for name := range m.activeReaders {
		m.selectChecked[name] = true
	}
	return nil
}

func (m *Model) visibleCandidates() []source.Source {
	var kind source.Kind
	if m.selectMode == selectPod {
		kind = source.KindPod
	} else {
		kind = source.KindTopic
	}

	var out []source.Source
	for _, c := range m.candidates {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// handleSelectKeys implements the pod/topic select overlay (spec §6:
// "Ctrl-A in select mode = select all; Enter in select mode = toggle
// one"). Esc applies the selection: Readers are started for newly
// checked sources and stopped for unchecked ones, then the overlay
// closes.
func (m *Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	candidates := m.visibleCandidates()

	switch msg.Type {
	case tea.KeyEsc:
		m.applySelection(candidates)
		m.selectMode = selectNone
		return m, nil

	case tea.KeyUp:
		if m.selectCursor > 0 {
			m.selectCursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.selectCursor < len(candidates)-1 {
			m.selectCursor++
		}
		return m, nil

	case tea.KeyEnter:
		if m.selectCursor >= 0 && m.selectCursor < len(candidates) {
			name := candidates[m.selectCursor].Name
			m.selectChecked[name] = !m.selectChecked[name]
		}
		return m, nil

	case tea.KeyCtrlA:
		for _, c := range candidates {
			m.selectChecked[c.Name] = true
		}
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	return m, nil
}

// applySelection diffs m.selectChecked against the active Readers for
// the visible kind and starts/stops Readers to match.
func (m *Model) applySelection(candidates []source.Source) {
	for _, c := range candidates {
		if m.selectChecked[c.Name] {
			m.startReader(c)
		} else {
			m.stopReader(c.Name)
		}
	}
}
