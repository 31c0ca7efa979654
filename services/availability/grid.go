package availability

import (
	"sort"

	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"
)

// GridStepMinutes is the fixed slot duration used to discretize schedule
// intervals.
const GridStepMinutes = 30

// BuildGrid expands a weekday's schedule intervals into slot start times
// at step-minute granularity, grouped by source interval.
//
// Each interval is half-open: a slot is emitted only when the full step
// fits before the interval end, so 09:00-10:00 yields [09:00 09:30] and an
// interval shorter than the step yields nothing. Malformed intervals
// (unparseable times, start >= end) are skipped individually; one bad
// interval never aborts generation for the rest.
func BuildGrid(intervals []models.ScheduleInterval, step int) []models.IntervalSlots {
	groups := make([]models.IntervalSlots, 0, len(intervals))
	for _, iv := range intervals {
		start, err := utils.ParseClock(iv.Start)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(iv.End)
		if err != nil || start >= end {
			continue
		}

		group := models.IntervalSlots{Start: iv.Start, End: iv.End, Slots: []string{}}
		for t := start; t+step <= end; t += step {
			group.Slots = append(group.Slots, utils.FormatClock(t))
		}
		groups = append(groups, group)
	}
	return groups
}

// Flatten merges grouped slot times into one ascending, de-duplicated
// list. Times appearing in two overlapping intervals are reported once.
func Flatten(groups []models.IntervalSlots) []string {
	seen := make(map[string]struct{})
	flat := []string{}
	for _, g := range groups {
		for _, t := range g.Slots {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			flat = append(flat, t)
		}
	}
	// "HH:MM" strings sort chronologically.
	sort.Strings(flat)
	return flat
}
