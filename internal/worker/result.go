package worker

import (
	"time"

	"github.com/tuilog/logtail/internal/logline"
)

// Result is one outbound message on the Worker's result channel
// (spec §4.E).
type Result interface {
	isResult()
}

// Messages is a published Snapshot's record list, ascending by timestamp.
type Messages struct {
	Records []logline.Record
}

// Elapsed reports how long the most recent snapshot took to compute.
type Elapsed struct {
	Duration time.Duration
}

// Size reports the combined Store + Skip-Buffer byte footprint.
type Size struct {
	Bytes int64
}

// Length reports the combined Store + Skip-Buffer record count.
type Length struct {
	Count int
}

// SkipUpdate tells the UI its skip state must catch up after a
// follow-mode transition (spec §4.E).
type SkipUpdate struct {
	Skip int
}

// Ingested reports one record accepted onto the Store or Skip-Buffer, named
// by its source, so a rate tracker downstream of the Worker can count
// events per source without re-deriving them from repeated, coalesced
// Messages snapshots (which would double-count a record present in more
// than one snapshot).
type Ingested struct {
	Source string
}

func (Messages) isResult()   {}
func (Elapsed) isResult()    {}
func (Size) isResult()       {}
func (Length) isResult()     {}
func (SkipUpdate) isResult() {}
func (Ingested) isResult()   {}
