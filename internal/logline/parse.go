package logline

import (
	"time"

	"github.com/tidwall/gjson"
)

// Parse turns one newline-delimited JSON log line into a Record. It reports
// ok=false for anything the line doesn't satisfy: malformed JSON, an
// unparseable `@timestamp`, or an unrecognized `level`. Per spec.md §7,
// callers must treat ok=false as a silent discard — upstream log streams
// routinely contain non-JSON noise and a bad line must never halt ingestion.
//
// Shape (spec.md §6): `@timestamp` (RFC3339), `message`, `level`, optional
// `stack` and `stack_trace`. Value is the concatenation of message + stack +
// stack_trace, matching the Rust original's `parse_and_send`. Source is left
// zero-valued here: per spec.md §3 the bucket key's source is the Reader's
// own pod/topic identity, not anything carried in the line itself (the
// original's `application` field is not extracted for the same reason —
// reader.base.insert stamps every record's Source unconditionally, so a
// value parsed here would only ever be discarded).
func Parse(line []byte) (Record, bool) {
	if !gjson.ValidBytes(line) {
		return Record{}, false
	}

	parsed := gjson.ParseBytes(line)
	if !parsed.IsObject() {
		return Record{}, false
	}

	tsField := parsed.Get("@timestamp")
	if !tsField.Exists() {
		return Record{}, false
	}
	ts, err := time.Parse(time.RFC3339, tsField.String())
	if err != nil {
		return Record{}, false
	}

	levelField := parsed.Get("level")
	level, ok := ParseLevel(levelField.String())
	if !ok {
		return Record{}, false
	}

	message := parsed.Get("message").String()
	stack := parsed.Get("stack").String()
	stackTrace := parsed.Get("stack_trace").String()

	return Record{
		Timestamp: ts.UTC(),
		Level:     level,
		Value:     message + stack + stackTrace,
	}, true
}
