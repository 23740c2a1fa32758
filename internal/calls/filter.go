package calls

import (
	"strings"
	"time"
)

// Filter is the active view predicate set for the conversations list.
// Zero value matches every record. Source ordering is preserved: the upstream
// API's ordering is the display ordering, no re-sort.
type Filter struct {
	// SearchTerm is matched case-insensitively as a substring of the caller id.
	SearchTerm string

	// From/To bound the start time by calendar day. Both must be set for the
	// range to apply; the To day is included in full.
	From time.Time
	To   time.Time
}

func (f Filter) hasRange() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

// Matches reports whether a single record passes ALL active predicates.
func (f Filter) Matches(r Record) bool {
	if f.SearchTerm != "" {
		if !strings.Contains(strings.ToLower(r.PhoneNumberFrom), strings.ToLower(f.SearchTerm)) {
			return false
		}
	}
	if f.hasRange() {
		// [From, To+1d): advancing the exclusive bound by one day makes the
		// end day fully inclusive.
		end := f.To.AddDate(0, 0, 1)
		if r.StartTime.Before(f.From) || !r.StartTime.Before(end) {
			return false
		}
	}
	return true
}

// Apply returns the ordered sub-sequence of records matching the filter.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Preset tokens for PresetRange.
const (
	PresetLast30    = "30"
	PresetLast90    = "90"
	PresetLastMonth = "lastMonth"
)

// PresetRange resolves a symbolic filter token into a [from, to] day range
// relative to today. An empty or unrecognized token clears the range.
//
// "lastMonth" is the full previous calendar month; in January that is
// December of the previous year.
func PresetRange(token string, today time.Time) (from, to time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	switch token {
	case PresetLast30:
		return day.AddDate(0, 0, -30), day
	case PresetLast90:
		return day.AddDate(0, 0, -90), day
	case PresetLastMonth:
		firstOfThisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		from = firstOfThisMonth.AddDate(0, -1, 0)
		to = firstOfThisMonth.AddDate(0, 0, -1)
		return from, to
	default:
		return time.Time{}, time.Time{}
	}
}
