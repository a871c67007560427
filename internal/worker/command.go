package worker

import "github.com/tuilog/logtail/internal/logline"

// Command is one inbound message on the Worker's command channel
// (spec §4.E). Concrete types below are the full set the source defines.
type Command interface {
	isCommand()
}

// InsertJSON carries one parsed record from a Reader task.
type InsertJSON struct {
	Record logline.Record
}

// FilterRegex recompiles the positive pattern.
type FilterRegex struct {
	Pattern string
}

// FilterNotRegexes recompiles the ordered negative pattern list.
type FilterNotRegexes struct {
	Patterns []string
}

// SetSkip requests the follow-mode transition described in spec §4.E.
type SetSkip struct {
	Skip int
}

// SetResultSize updates the viewport row capacity.
type SetResultSize struct {
	Size int
}

// ToggleLevel flips one level's bit in the query's level mask.
type ToggleLevel struct {
	Level logline.Level
}

// Clear empties the Store and Skip-Buffer.
type Clear struct{}

// Exit terminates the Worker's run loop.
type Exit struct{}

// SnapshotQuery is a one-off, read-only query against the Store that does
// not disturb the persistent query/skip state the viewport is driving
// (used by internal/mcpsearch, which must not steal the TUI's follow-mode
// position or its filter just because an MCP client ran a search). The
// Worker answers it directly on Reply rather than through Results, since
// Results is a single-consumer stream the TUI is already draining.
type SnapshotQuery struct {
	Pattern   string
	Negatives []string
	Mask      logline.LevelMask
	Limit     int
	Reply     chan<- []logline.Record
}

func (InsertJSON) isCommand()       {}
func (FilterRegex) isCommand()      {}
func (FilterNotRegexes) isCommand() {}
func (SetSkip) isCommand()          {}
func (SetResultSize) isCommand()    {}
func (ToggleLevel) isCommand()      {}
func (Clear) isCommand()            {}
func (Exit) isCommand()             {}
func (SnapshotQuery) isCommand()    {}
