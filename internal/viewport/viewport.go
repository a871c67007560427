// Package viewport implements the Viewport Controller (component G):
// row expansion under wrap/truncate, and the follow-mode scroll-state
// machine that keeps the visible window stable as new records arrive.
package viewport

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/tuilog/logtail/internal/logline"
)

// Controller tracks the scroll/follow state across redraws (spec §4.G).
// It is driven purely by data — no terminal I/O — so it is testable in
// isolation from bubbletea.
type Controller struct {
	DroppedBottom     int
	Skip              int
	LastMessageHeight int
	JustSkipped       bool
	JustSkippedBottom bool
}

// NewController returns a Controller starting in follow mode.
func NewController() *Controller {
	return &Controller{}
}

// Frame is one redraw's output: up to height rows, newest on top, plus
// an optional SetSkip value the caller must forward to the Search
// Worker.
type Frame struct {
	Rows        []string
	SkipRequest *int
}

// Render computes one redraw frame from the latest snapshot, which is
// ascending by time exactly as published by the Search Worker. Render
// reverses it internally for newest-on-top display (spec §4.G).
func (c *Controller) Render(records []logline.Record, height, width int, wrap bool) Frame {
	recordRows := make([][]string, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		recordRows[len(records)-1-i] = expandRecord(records[i], width, wrap)
	}

	var rows []string
	for _, rs := range recordRows {
		rows = append(rows, rs...)
	}

	topSkip := len(rows) - height - c.DroppedBottom
	if topSkip < 0 {
		topSkip = 0
	}

	var frame Frame

	// The newest record has scrolled off the bottom: ask the worker to
	// advance skip by one and arm the latch that will correct
	// dropped_bottom once that shift actually lands (spec §4.G). While the
	// latch is armed no further skip is requested, and the latch is only
	// consumed by a later Render, not by the one that armed it.
	armed := false
	if !c.JustSkipped && len(rows) >= height && c.DroppedBottom >= c.LastMessageHeight {
		c.Skip++
		v := c.Skip
		frame.SkipRequest = &v
		c.JustSkipped = true
		armed = true
	}

	if c.JustSkippedBottom {
		c.DroppedBottom += c.LastMessageHeight - 1
		c.JustSkippedBottom = false
	}

	if c.JustSkipped && !armed && c.DroppedBottom >= c.LastMessageHeight {
		c.DroppedBottom -= c.LastMessageHeight
		c.JustSkipped = false
	}

	if len(recordRows) > 0 {
		c.LastMessageHeight = len(recordRows[0])
	} else {
		c.LastMessageHeight = 0
	}

	end := topSkip + height
	if end > len(rows) {
		end = len(rows)
	}
	if topSkip > end {
		topSkip = end
	}
	frame.Rows = rows[topSkip:end]
	return frame
}

// KeyUp scrolls one row toward older records.
func (c *Controller) KeyUp() {
	c.DroppedBottom++
}

// KeyDown scrolls one row toward newer records. If the viewport is
// already scrolled (dropped_bottom > 0) it simply decrements; otherwise,
// if skip > 0, it asks the worker to reduce skip by one and arms
// just_skipped_bottom so the next frame compensates for the resulting
// height shift (spec §4.G). The returned pointer is the SetSkip value to
// send, or nil if nothing should be sent.
func (c *Controller) KeyDown() *int {
	if c.DroppedBottom > 0 {
		c.DroppedBottom--
		return nil
	}
	if c.Skip > 0 {
		c.Skip--
		v := c.Skip
		c.JustSkippedBottom = true
		return &v
	}
	return nil
}

// KeyEnter returns to follow mode, resetting both the local scroll state
// and the skip value sent to the worker.
func (c *Controller) KeyEnter() int {
	c.Skip = 0
	c.DroppedBottom = 0
	return 0
}

// expandRecord renders one record as a header (timestamp, source,
// level) plus its value, either soft-wrapped at width or truncated
// (spec §4.G).
func expandRecord(r logline.Record, width int, wrap bool) []string {
	header := formatHeader(r)

	if !wrap {
		headerWidth := runewidth.StringWidth(header)
		limit := width + 10 - headerWidth
		if limit < 0 {
			limit = 0
		}
		return []string{header + truncateRunes(r.Value, limit)}
	}

	// A value containing a newline is split at the first newline only; the
	// remainder begins a new row and is itself soft-wrapped, but any
	// further newlines inside it are left as literal characters (spec
	// §4.G) rather than starting additional rows.
	first, rest, hasNewline := strings.Cut(r.Value, "\n")
	segments := []string{header + first}
	if hasNewline {
		segments = append(segments, rest)
	}

	var rows []string
	for _, seg := range segments {
		rows = append(rows, softWrap(seg, width)...)
	}
	return rows
}

func formatHeader(r logline.Record) string {
	return r.Timestamp.Format(time.RFC3339) + " " + r.Source + " " + r.Level.String() + " "
}

// truncateRunes truncates s to at most limit runes, never splitting a
// multi-byte character.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if limit >= len(runes) {
		return s
	}
	return string(runes[:limit])
}

// softWrap splits line into rows no wider than width display columns,
// counting width per spec §9 ("count display columns... must not split
// inside a multi-byte character"). Operating on runes rather than bytes
// makes splitting inside a multi-byte character impossible by
// construction.
func softWrap(line string, width int) []string {
	if width <= 0 {
		return []string{line}
	}

	runes := []rune(line)
	var out []string
	for {
		if runewidth.StringWidth(string(runes)) <= width {
			out = append(out, string(runes))
			return out
		}

		cut := 0
		acc := 0
		for i, r := range runes {
			rw := runewidth.RuneWidth(r)
			if acc+rw > width {
				cut = i
				break
			}
			acc += rw
			cut = i + 1
		}
		if cut == 0 {
			// A single rune already exceeds width (e.g. a wide CJK
			// character in a one-column terminal); emit it alone rather
			// than looping forever.
			cut = 1
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
	}
}
