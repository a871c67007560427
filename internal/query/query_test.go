package query

import (
	"testing"
	"time"

	"github.com/tuilog/logtail/internal/logline"
)

func rec(value string, level logline.Level) logline.Record {
	return logline.Record{
		Timestamp: time.Unix(0, 0).UTC(),
		Source:    "A",
		Level:     level,
		Value:     value,
	}
}

func TestNewQueryMatchesEverything(t *testing.T) {
	q := New()
	if !q.Matches(rec("anything at all", logline.DEBUG)) {
		t.Error("a Query from New() should match any record at any level")
	}
}

func TestSetPositiveOnly(t *testing.T) {
	q := New()
	q.SetPositive("error")
	if !q.Matches(rec("an error occurred", logline.INFO)) {
		t.Error("expected match on positive substring")
	}
	if q.Matches(rec("all fine", logline.INFO)) {
		t.Error("expected no match without the positive term")
	}
}

func TestSetPositiveEmptyStringIsPermissive(t *testing.T) {
	q := New()
	q.SetPositive("error")
	q.SetPositive("")
	if !q.Matches(rec("all fine", logline.INFO)) {
		t.Error("empty filter should fall back to matching everything")
	}
}

func TestSetNegativeExcludes(t *testing.T) {
	q := New()
	q.SetNegative([]string{"B"})
	if q.Matches(rec("value mentioning B here", logline.INFO)) {
		t.Error("record containing the negative token should be excluded")
	}
	if !q.Matches(rec("value mentioning A here", logline.INFO)) {
		t.Error("record not containing the negative token should pass")
	}
}

func TestPositiveAndNegativeCombine(t *testing.T) {
	q := New()
	q.SetPositive("value")
	q.SetNegative([]string{"B"})
	if !q.Matches(rec("value mentioning A", logline.INFO)) {
		t.Error("expected positive-only match to pass")
	}
	if q.Matches(rec("value mentioning B", logline.INFO)) {
		t.Error("expected negative token to exclude despite positive match")
	}
}

func TestNegativeCompileFailureFallsBackToPermissiveAndExcludesEverything(t *testing.T) {
	// An unbalanced group is an invalid regex; per spec §4.D / §9 this is a
	// known, deliberately unfixed source behavior: the negative pattern
	// falls back to ".*" and therefore excludes every record.
	q := New()
	q.SetNegative([]string{"(unterminated"})
	if q.Matches(rec("literally anything", logline.INFO)) {
		t.Error("a negative pattern that fails to compile should match-all and thus exclude everything")
	}
}

func TestPositiveCompileFailureFallsBackToPermissive(t *testing.T) {
	q := New()
	q.SetPositive("(unterminated")
	if !q.Matches(rec("literally anything", logline.INFO)) {
		t.Error("a positive pattern that fails to compile should fall back to matching everything")
	}
}

func TestLevelMaskExcludesUnselectedLevels(t *testing.T) {
	q := New()
	q.ToggleLevel(logline.DEBUG)
	if q.Matches(rec("some debug line", logline.DEBUG)) {
		t.Error("DEBUG should be excluded after toggling it off")
	}
	if !q.Matches(rec("some info line", logline.INFO)) {
		t.Error("INFO should remain included")
	}
}

func TestToggleLevelTwiceIsIdentity(t *testing.T) {
	q := New()
	before := q.Mask()
	q.ToggleLevel(logline.WARN)
	q.ToggleLevel(logline.WARN)
	if q.Mask() != before {
		t.Errorf("Mask() = %v after double toggle, want unchanged %v", q.Mask(), before)
	}
}

func TestMultipleNegativePatternsOrderedAllApply(t *testing.T) {
	q := New()
	q.SetNegative([]string{"foo", "bar"})
	if q.Matches(rec("contains foo", logline.INFO)) {
		t.Error("first negative pattern should exclude")
	}
	if q.Matches(rec("contains bar", logline.INFO)) {
		t.Error("second negative pattern should exclude")
	}
	if !q.Matches(rec("contains neither", logline.INFO)) {
		t.Error("record matching no negative pattern should pass")
	}
}

func TestSplitFilterInputSeparatesPositiveAndNegative(t *testing.T) {
	positive, negative := SplitFilterInput("value !B !C")
	if positive != "value" {
		t.Errorf("positive = %q, want %q", positive, "value")
	}
	if len(negative) != 2 || negative[0] != "B" || negative[1] != "C" {
		t.Errorf("negative = %v, want [B C]", negative)
	}
}

func TestSplitFilterInputNoNegatives(t *testing.T) {
	positive, negative := SplitFilterInput("plain text search")
	if positive != "plain text search" {
		t.Errorf("positive = %q, want %q", positive, "plain text search")
	}
	if len(negative) != 0 {
		t.Errorf("negative = %v, want empty", negative)
	}
}

func TestSplitFilterInputBareBangIsNotNegative(t *testing.T) {
	// A lone "!" has no further character, so per spec it is not treated
	// as a negative token.
	positive, negative := SplitFilterInput("! foo")
	if len(negative) != 0 {
		t.Errorf("negative = %v, want empty for a bare '!' token", negative)
	}
	if positive != "! foo" {
		t.Errorf("positive = %q, want %q", positive, "! foo")
	}
}
