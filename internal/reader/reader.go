// Package reader implements the Reader Task (component F): a per-source
// byte-stream consumer that parses newline-delimited JSON and forwards
// InsertJSON commands to the Search Worker until stopped.
package reader

import (
	"sync/atomic"

	"github.com/tuilog/logtail/internal/logline"
	"github.com/tuilog/logtail/internal/worker"
)

// Task is one Reader (spec §4.F). Run blocks until Stop is called (or the
// Worker's command channel is gone) and should be launched via
// crashlog.SafeGo. Stop is safe to call more than once.
type Task interface {
	Source() string
	Run()
	Stop()
}

// base holds the state shared by every Reader variant: the source name,
// the outbound command channel, and the cooperative stop flag described
// in spec §4.F/§5 ("a shared atomic should_stop").
type base struct {
	source   string
	commands chan<- worker.Command
	stop     atomic.Bool
	stopped  chan struct{}
}

func newBase(source string, commands chan<- worker.Command) base {
	return base{source: source, commands: commands, stopped: make(chan struct{})}
}

func (b *base) Source() string { return b.source }

// Stop flips the stop flag and waits for Run to return (spec §4.F
// "on stop: kill the child; join").
func (b *base) Stop() {
	b.stop.Store(true)
	<-b.stopped
}

// insert stamps r with this Reader's source and forwards it to the
// Worker. If the command channel has been closed (the engine is gone),
// the send panics; insert recovers, flips the stop flag, and reports
// false so the caller can wind down quietly (spec §7).
func (b *base) insert(r logline.Record) (alive bool) {
	defer func() {
		if recover() != nil {
			alive = false
			b.stop.Store(true)
		}
	}()
	r.Source = b.source
	b.commands <- worker.InsertJSON{Record: r}
	return true
}
