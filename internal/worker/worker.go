// Package worker implements the Search Worker (component E): the single
// goroutine that owns the Store, the Skip-Buffer, and the Query, and
// coordinates the follow/skip protocol between Reader tasks and the UI.
package worker

import (
	"time"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/query"
	"github.com/tuilog/logtail/internal/store"
)

// Worker is the single-goroutine coordinator described in spec §4.E. All
// state here is touched only from the Run goroutine; every other
// goroutine talks to it exclusively through the command and result
// channels.
type Worker struct {
	store      *store.Store
	skipBuffer *store.Store
	query      *query.Query

	skip       int
	resultSize int

	commands chan Command
	results  chan Result
}

// New creates a Worker with its own Store and Skip-Buffer, both bounded by
// budget. The channels are unbounded in spirit (buffered large) so Reader
// tasks never block on the Worker (spec §5 "backpressure-free
// producers").
func New(budget int64) *Worker {
	return &Worker{
		store:      store.New(budget),
		skipBuffer: store.New(budget),
		query:      query.New(),
		commands:   make(chan Command, 4096),
		results:    make(chan Result, 4096),
	}
}

// Commands returns the send side of the command channel.
func (w *Worker) Commands() chan<- Command { return w.commands }

// Results returns the receive side of the result channel.
func (w *Worker) Results() <-chan Result { return w.results }

// Run executes the main loop protocol (spec §4.E): drain every pending
// command without blocking; once the channel is empty, compute and
// publish one snapshot, then block for the next command. A burst of
// inserts therefore publishes at most one snapshot at the end of the
// burst (snapshot coalescing, spec §9) — do not change this to
// publish-per-message or a fixed interval.
func (w *Worker) Run() {
	for {
		select {
		case cmd, ok := <-w.commands:
			if !ok {
				panic("worker: command channel closed")
			}
			if !w.handle(cmd) {
				return
			}
			continue
		default:
		}

		start := time.Now()
		records := w.snapshot()
		elapsed := time.Since(start)
		w.results <- Messages{Records: records}
		w.results <- Elapsed{Duration: elapsed}

		cmd, ok := <-w.commands
		if !ok {
			panic("worker: command channel closed")
		}
		if !w.handle(cmd) {
			return
		}
	}
}

// handle applies one command to Worker state. The bool return is false
// only for Exit, telling Run to stop.
func (w *Worker) handle(cmd Command) bool {
	switch c := cmd.(type) {
	case InsertJSON:
		if w.skip == 0 {
			w.store.Put(c.Record)
		} else {
			w.skipBuffer.Put(c.Record)
		}
		w.results <- Size{Bytes: w.store.Size() + w.skipBuffer.Size()}
		w.results <- Length{Count: w.store.Count() + w.skipBuffer.Count()}
		w.results <- Ingested{Source: c.Record.Source}

	case FilterRegex:
		w.query.SetPositive(c.Pattern)

	case FilterNotRegexes:
		w.query.SetNegative(c.Patterns)

	case SetSkip:
		w.setSkip(c.Skip)

	case SetResultSize:
		w.resultSize = c.Size

	case ToggleLevel:
		w.query.ToggleLevel(c.Level)

	case Clear:
		w.store.Clear()
		w.skipBuffer.Clear()
		w.results <- Size{Bytes: 0}
		w.results <- Length{Count: 0}

	case Exit:
		return false

	case SnapshotQuery:
		c.Reply <- w.answerSnapshotQuery(c)
	}
	return true
}

// answerSnapshotQuery evaluates a throwaway Query against the live Store
// without touching w.query, w.skip, or w.resultSize — it must have zero
// effect on what the TUI's own snapshot loop does next.
func (w *Worker) answerSnapshotQuery(c SnapshotQuery) []logline.Record {
	q := query.New()
	q.SetPositive(c.Pattern)
	q.SetNegative(c.Negatives)
	mask := c.Mask
	if mask == 0 {
		mask = q.Mask()
	}

	limit := c.Limit
	if limit <= 0 {
		return nil
	}

	it := w.store.Iter(mask)
	var out []logline.Record
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		if !q.Matches(r) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

// setSkip implements the follow-mode transition (spec §4.E, §9). The
// s==1 and s>1 cases are NOT equivalent: only s==1 advances skip by the
// drained count, which is load-bearing for scroll stability at the
// follow/un-follow boundary. Do not normalize them.
func (w *Worker) setSkip(i int) {
	s := w.skip
	switch {
	case s == 1 && i == 0:
		k := w.skipBuffer.DrainOldestFirst(w.store.Put)
		w.skip = k
		w.results <- SkipUpdate{Skip: k}
	case s > 1 && i == 0:
		w.skipBuffer.DrainOldestFirst(w.store.Put)
		w.skip = 0
	default:
		w.skip = i
	}
}

// snapshot materializes Store.iter(level_mask).filter(Query).skip(skip)
// .take(result_size) (spec §4.E step 3). resultSize == 0 yields an empty
// snapshot regardless of Store contents.
func (w *Worker) snapshot() []logline.Record {
	if w.resultSize <= 0 {
		return nil
	}

	it := w.store.Iter(w.query.Mask())
	var out []logline.Record
	skipped := 0
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		if !w.query.Matches(r) {
			continue
		}
		if skipped < w.skip {
			skipped++
			continue
		}
		out = append(out, r)
		if len(out) == w.resultSize {
			break
		}
	}
	return out
}
