// Package query implements the positive/negative-regex, level-masked
// predicate applied over merged records (component D).
package query

import (
	"regexp"
	"strings"

	"github.com/tuilog/logtail/internal/logline"
)

// permissive is substituted whenever a user pattern fails to compile.
const permissive = ".*"

// Query holds the compiled filter state: one positive pattern, an ordered
// list of negative patterns, and a level mask. Build one with New, which
// matches everything at every level; the zero value has an empty mask and
// no positive pattern, and matches nothing.
type Query struct {
	positive *regexp.Regexp
	negative []*regexp.Regexp
	mask     logline.LevelMask
}

// New returns a Query with the permissive positive pattern and every level
// enabled.
func New() *Query {
	return &Query{
		positive: regexp.MustCompile(permissive),
		mask:     logline.MaskAll,
	}
}

// SplitFilterInput splits a raw input line the way the UI's query line
// editor does before issuing FilterRegex/FilterNotRegexes commands
// (spec §4.D): fields starting with `!` and at least one further
// character become negative tokens, in the order encountered; the
// remaining fields are rejoined by a single space into the positive
// string.
func SplitFilterInput(raw string) (positive string, negatives []string) {
	fields := strings.Fields(raw)
	var positiveTokens []string
	for _, f := range fields {
		if len(f) > 1 && f[0] == '!' {
			negatives = append(negatives, f[1:])
			continue
		}
		positiveTokens = append(positiveTokens, f)
	}
	return strings.Join(positiveTokens, " "), negatives
}

// SetPositive recompiles the positive pattern, wrapped as ".*<pattern>.*".
// A compile failure falls back to the permissive pattern (spec §4.D,
// §7 — FilterRegex command handling).
func (q *Query) SetPositive(pattern string) {
	q.positive = compileWrapped(pattern)
}

// SetNegative recompiles the ordered negative pattern list, each wrapped
// the same way. A compile failure for a given entry ALSO falls back to
// the permissive pattern for that entry — which makes that entry match
// everything and therefore exclude everything. This mirrors a known
// source behavior (see spec's open questions) and is deliberately not
// "fixed" here.
func (q *Query) SetNegative(patterns []string) {
	negative := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		negative = append(negative, compileWrapped(p))
	}
	q.negative = negative
}

func compileWrapped(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(".*" + pattern + ".*")
	if err != nil {
		return regexp.MustCompile(permissive)
	}
	return re
}

// Matches reports whether r satisfies the positive pattern, none of the
// negative patterns, and falls within the level mask.
func (q *Query) Matches(r logline.Record) bool {
	if !q.mask.Has(r.Level) {
		return false
	}
	if !q.positive.MatchString(r.Value) {
		return false
	}
	for _, n := range q.negative {
		if n.MatchString(r.Value) {
			return false
		}
	}
	return true
}

// ToggleLevel flips the given level's bit in the mask.
func (q *Query) ToggleLevel(l logline.Level) {
	q.mask = q.mask.Toggle(l)
}

// Mask returns the current level mask, used by Store.Iter for bucket
// selection (level masking is O(1) at the bucket layer, not per record —
// spec §4.D).
func (q *Query) Mask() logline.LevelMask {
	return q.mask
}
