package planner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gapgenie/gapgenie-back/internal/models"
	"github.com/gapgenie/gapgenie-back/internal/timeutil"
)

// Defaults for the day window used when the caller passes nothing explicit.
const (
	DefaultDayStart      = "08:00"
	DefaultDayEnd        = "21:00"
	DefaultMinGapMinutes = 20
)

// ErrInvalidInterval is returned when a requested window ends before it starts.
var ErrInvalidInterval = errors.New("invalid interval")

// Gap is a free interval within the day window. It is derived from the
// timetable on every call and never persisted.
type Gap struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
	Label           string `json:"label,omitempty"`
	AfterClass      string `json:"afterClass,omitempty"`
	BeforeClass     string `json:"beforeClass,omitempty"`
}

// DetectGaps computes the free intervals of one day between the given
// timetable entries, bounded by [dayStart, dayEnd]. Gaps shorter than
// minGapMinutes are dropped. Entries are sorted by start time here, so the
// caller may pass them in any order; entries lying outside the day window
// are taken as-is, not clipped. Malformed times fail with
// timeutil.ErrInvalidFormat, an empty window with ErrInvalidInterval.
func DetectGaps(entries []models.TimetableEntry, dayStart, dayEnd string, minGapMinutes int) ([]Gap, error) {
	window, err := timeutil.Diff(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: day window %s-%s", ErrInvalidInterval, dayStart, dayEnd)
	}

	if len(entries) == 0 {
		return []Gap{{Start: dayStart, End: dayEnd, DurationMinutes: window}}, nil
	}

	type span struct {
		start, end int
		entry      models.TimetableEntry
	}

	spans := make([]span, len(entries))
	for i, e := range entries {
		start, err := timeutil.ToMinutes(e.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ToMinutes(e.EndTime)
		if err != nil {
			return nil, err
		}
		spans[i] = span{start: start, end: end, entry: e}
	}

	// Stable keeps the upload order for entries starting at the same time.
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	gaps := []Gap{}

	first := spans[0]
	if d, _ := timeutil.Diff(dayStart, first.entry.StartTime); d > 0 && d >= minGapMinutes {
		gaps = append(gaps, Gap{
			Start:           dayStart,
			End:             first.entry.StartTime,
			DurationMinutes: d,
			Label:           "Before first class",
			BeforeClass:     first.entry.Subject,
		})
	}

	for i := 0; i < len(spans)-1; i++ {
		cur, next := spans[i], spans[i+1]
		d := next.start - cur.end
		if d > 0 && d >= minGapMinutes {
			gaps = append(gaps, Gap{
				Start:           cur.entry.EndTime,
				End:             next.entry.StartTime,
				DurationMinutes: d,
				Label:           fmt.Sprintf("Between %s and %s", cur.entry.Subject, next.entry.Subject),
				AfterClass:      cur.entry.Subject,
				BeforeClass:     next.entry.Subject,
			})
		}
	}

	last := spans[len(spans)-1]
	if d, _ := timeutil.Diff(last.entry.EndTime, dayEnd); d > 0 && d >= minGapMinutes {
		gaps = append(gaps, Gap{
			Start:           last.entry.EndTime,
			End:             dayEnd,
			DurationMinutes: d,
			Label:           "After last class",
			AfterClass:      last.entry.Subject,
		})
	}

	return gaps, nil
}

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the timetable day name for the given moment.
func DayName(now time.Time) string {
	return dayNames[int(now.Weekday())]
}

// EntriesForDay filters a full timetable down to one day, sorted by start time.
func EntriesForDay(entries []models.TimetableEntry, day string) []models.TimetableEntry {
	filtered := []models.TimetableEntry{}
	for _, e := range entries {
		if e.DayOfWeek == day {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		a, _ := timeutil.ToMinutes(filtered[i].StartTime)
		b, _ := timeutil.ToMinutes(filtered[j].StartTime)
		return a < b
	})
	return filtered
}

// InGap reports whether the given moment falls inside the gap.
func InGap(gap Gap, now time.Time) bool {
	cur := now.Hour()*60 + now.Minute()
	start, err := timeutil.ToMinutes(gap.Start)
	if err != nil {
		return false
	}
	end, err := timeutil.ToMinutes(gap.End)
	if err != nil {
		return false
	}
	return cur >= start && cur < end
}

// NextGap returns the first gap starting after the given moment, or nil.
func NextGap(gaps []Gap, now time.Time) *Gap {
	cur := now.Hour()*60 + now.Minute()
	for i := range gaps {
		start, err := timeutil.ToMinutes(gaps[i].Start)
		if err != nil {
			continue
		}
		if start > cur {
			return &gaps[i]
		}
	}
	return nil
}

// TotalFreeMinutes sums the durations of all gaps.
func TotalFreeMinutes(gaps []Gap) int {
	total := 0
	for _, g := range gaps {
		total += g.DurationMinutes
	}
	return total
}
