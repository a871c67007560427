// Package tui is the out-of-scope "TUI key/mouse event loop and widget
// drawing" collaborator the engine defers to: a bubbletea Model that
// drives the Search Worker's command channel, renders its Messages
// snapshots through the Viewport Controller, and manages Reader task
// lifetime for the pod/topic sources the operator selects.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docker/docker/client"

	"github.com/tuilog/logtail/internal/crashlog"
	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/ratetracker"
	"github.com/tuilog/logtail/internal/reader"
	"github.com/tuilog/logtail/internal/source"
	"github.com/tuilog/logtail/internal/viewport"
	"github.com/tuilog/logtail/internal/worker"
)

// selectKind is which candidate list the pod/topic select overlay is
// showing (spec §6: Ctrl-P enters pod-select mode, Ctrl-K topic-select).
type selectKind int

const (
	selectNone selectKind = iota
	selectPod
	selectTopic
)

// Model is the bubbletea Model driving the engine.
type Model struct {
	dockerClient *client.Client
	commands     chan<- worker.Command
	results      <-chan worker.Result
	sources      source.Lister
	rateTracker  *ratetracker.Manager

	width, height int
	spinnerFrame  int

	wrap     bool
	levels   [4]bool // INFO, WARN, ERROR, DEBUG — local mirror of the worker's mask, for the status line
	viewport *viewport.Controller

	queryInput  string
	queryCursor int

	snapshot []logline.Record
	elapsed  time.Duration
	size     int64
	length   int

	toastMessage string
	toastIsError bool

	selectMode    selectKind
	selectCursor  int
	selectChecked map[string]bool
	candidates    []source.Source
	activeReaders map[string]reader.Task

	err error
}

// New builds a Model. commands/results are the Worker's channel pair;
// sources enumerates the candidate pod/topic list for the select
// overlays; dockerClient backs PodReader instances started from the pod
// selector (nil is fine if only topic sources will ever be used).
func New(dockerClient *client.Client, commands chan<- worker.Command, results <-chan worker.Result, sources source.Lister, rateTracker *ratetracker.Manager, wrap bool) *Model {
	return &Model{
		dockerClient:  dockerClient,
		commands:      commands,
		results:       results,
		sources:       sources,
		rateTracker:   rateTracker,
		wrap:          wrap,
		levels:        [4]bool{true, true, true, true},
		viewport:      viewport.NewController(),
		selectChecked: make(map[string]bool),
		activeReaders: make(map[string]reader.Task),
	}
}

// resultMsg wraps one Result off the Worker's result channel.
type resultMsg struct{ result worker.Result }

// sourcesLoadedMsg carries the candidate source list fetched at startup.
type sourcesLoadedMsg struct {
	sources []source.Source
	err     error
}

type tickMsg time.Time

type toastMsg struct {
	message string
	isError bool
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForResult(results <-chan worker.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return nil
		}
		return resultMsg{result: r}
	}
}

func loadSourcesCmd(sources source.Lister) tea.Cmd {
	return func() tea.Msg {
		list, err := sources.List(context.Background())
		return sourcesLoadedMsg{sources: list, err: err}
	}
}

// Init kicks off the result-channel pump, the startup source load, and
// the spinner tick, mirroring the teacher's own tea.Batch of initial
// commands in model.go's Init.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForResult(m.results),
		loadSourcesCmd(m.sources),
		tickCmd(),
	)
}

// Update dispatches incoming messages, following the teacher's model.go
// switch-on-message-type structure.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.commands <- worker.SetResultSize{Size: m.viewportHeight()}
		return m, tea.ClearScreen

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case resultMsg:
		m.applyResult(msg.result)
		return m, waitForResult(m.results)

	case sourcesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.candidates = msg.sources
		}
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, tickCmd()

	case toastMsg:
		m.toastMessage = msg.message
		m.toastIsError = msg.isError
		if msg.message == "" {
			return m, nil
		}
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return toastMsg{} })
	}

	return m, nil
}

// applyResult folds one Worker Result into Model state (spec §4.E
// result channel: Messages, Elapsed, Size, Length, SkipUpdate, plus the
// Ingested event driving the rate tracker).
func (m *Model) applyResult(r worker.Result) {
	switch v := r.(type) {
	case worker.Messages:
		m.snapshot = v.Records
	case worker.Elapsed:
		m.elapsed = v.Duration
	case worker.Size:
		m.size = v.Bytes
	case worker.Length:
		m.length = v.Count
	case worker.SkipUpdate:
		m.viewport.Skip = v.Skip
	case worker.Ingested:
		m.rateTracker.Insert(v.Source)
	}
}

// viewportHeight is the number of rows available for log content, after
// the status line and query line (mirrors the teacher's own
// height-minus-chrome arithmetic, e.g. getFilteredLogCount's
// height-5).
func (m *Model) viewportHeight() int {
	h := m.height - 2
	if h < 0 {
		return 0
	}
	return h
}

// View renders the current frame.
func (m *Model) View() string {
	switch m.selectMode {
	case selectPod, selectTopic:
		return m.renderSelect()
	default:
		return m.renderMain()
	}
}

// Stop tears down every active Reader task (spec §5: "the UI thread
// flips every stop flag, then joins each Reader; this must complete
// before Exit is sent to the Worker"), then tells the Worker to exit.
func (m *Model) Stop() {
	for name, r := range m.activeReaders {
		r.Stop()
		m.rateTracker.Remove(name)
	}
	m.commands <- worker.Exit{}
}

// startReader launches a Reader for src and registers it, via
// crashlog.SafeGo like every other long-lived goroutine in this program.
func (m *Model) startReader(src source.Source) {
	if _, ok := m.activeReaders[src.Name]; ok {
		return
	}

	var task reader.Task
	switch src.Kind {
	case source.KindPod:
		task = reader.NewPodReader(m.dockerClient, src.Name, src.Name, m.commands)
	case source.KindTopic:
		task = reader.NewTopicReader([]string{src.Name}, m.commands)
	default:
		return
	}

	m.activeReaders[src.Name] = task
	name := src.Name
	crashlog.SafeGo("reader-"+name, task.Run)
}

// stopReader stops and unregisters the Reader for name, if any.
func (m *Model) stopReader(name string) {
	r, ok := m.activeReaders[name]
	if !ok {
		return
	}
	delete(m.activeReaders, name)
	crashlog.SafeGo("reader-stop-"+name, func() {
		r.Stop()
		m.rateTracker.Remove(name)
	})
}
