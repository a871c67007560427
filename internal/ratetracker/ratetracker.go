// Package ratetracker estimates a per-source events-per-second rate,
// driving the log-rate column the UI shows next to each source.
package ratetracker

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxRate bounds the detectable rate, mirroring the teacher's
// hard-capped ring buffer (ratetracker.go's maxEntries) — past this
// point the exact number stops mattering to the operator.
const maxRate = 5000

// staleAfter is how long a source can go quiet before its rate is
// reported as zero rather than whatever it was trending toward.
const staleAfter = 2 * time.Second

// Tracker estimates one source's rate using golang.org/x/time/rate as a
// counter rather than a throttle: the limiter's bucket holds maxRate
// tokens and refills at maxRate tokens/sec, so (burst − tokens
// remaining) approximates how many events landed in roughly the last
// second. This replaces the teacher's hand-rolled sliding window of
// timestamps with the ecosystem's rate limiter.
type Tracker struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	lastUpdate time.Time
}

func newTracker() *Tracker {
	return &Tracker{limiter: rate.NewLimiter(rate.Limit(maxRate), maxRate)}
}

// AddLine records one event.
func (t *Tracker) AddLine() { t.addLineAt(time.Now()) }

func (t *Tracker) addLineAt(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastUpdate = now
	t.limiter.AllowN(now, 1)
}

// Rate returns the estimated events-per-second.
func (t *Tracker) Rate() float64 { return t.rateAt(time.Now()) }

func (t *Tracker) rateAt(now time.Time) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.lastUpdate) > staleAfter {
		return 0
	}

	r := float64(maxRate) - t.limiter.TokensAt(now)
	if r < 0 {
		r = 0
	}
	return r
}

// Manager tracks rates across many sources, keyed by source name, and
// is safe for concurrent use: the UI inserts from its result handling and
// reads while rendering, and reader-stop goroutines remove trackers.
type Manager struct {
	mu       sync.RWMutex
	trackers map[string]*Tracker
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{trackers: make(map[string]*Tracker)}
}

// Insert records one event for source, creating its tracker on first
// use.
func (m *Manager) Insert(source string) {
	m.mu.Lock()
	tr, ok := m.trackers[source]
	if !ok {
		tr = newTracker()
		m.trackers[source] = tr
	}
	m.mu.Unlock()
	tr.AddLine()
}

// Rate returns the estimated events/sec for source, or 0 if the source
// is unknown.
func (m *Manager) Rate(source string) float64 {
	m.mu.RLock()
	tr := m.trackers[source]
	m.mu.RUnlock()
	if tr == nil {
		return 0
	}
	return tr.Rate()
}

// Remove drops the tracker for source, e.g. once its Reader task has
// stopped.
func (m *Manager) Remove(source string) {
	m.mu.Lock()
	delete(m.trackers, source)
	m.mu.Unlock()
}
