package openhours

import (
	"sort"
	"time"
)

// build expands every rule into one (start, end) boundary pair per
// (weekday, time range) combination. The result is unsorted.
func build(data *ScheduleData) []time.Time {
	var bounds []time.Time
	for _, rule := range data.Rules {
		for _, r := range rule.Ranges {
			for _, day := range rule.Days {
				bounds = appendInterval(bounds, anchor(day, r.From), anchor(day, r.To))
			}
		}
	}
	return bounds
}

// appendInterval appends the pair start-end to bounds. A range ending
// before it starts runs overnight into the next day, and a range crossing
// the end of the week is split so that its tail reopens the week.
func appendInterval(bounds []time.Time, start, end time.Time) []time.Time {
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	if !end.After(start) {
		return bounds
	}
	if !start.Before(weekEnd) {
		start, end = start.Add(-Week), end.Add(-Week)
	}
	if end.After(weekEnd) {
		bounds = append(bounds, start, weekEnd)
		return append(bounds, weekStart, end.Add(-Week))
	}
	return append(bounds, start, end)
}

// merge sorts the boundary pairs and collapses overlapping or touching
// intervals until every stored interval ends strictly before the next one
// starts. The input is not modified.
func merge(bounds []time.Time) []time.Time {
	pairs := make([]Interval, 0, len(bounds)/2)
	for i := 0; i+1 < len(bounds); i += 2 {
		pairs = append(pairs, Interval{Start: bounds[i], End: bounds[i+1]})
	}
	sort.Slice(pairs, func(a, b int) bool {
		if !pairs[a].Start.Equal(pairs[b].Start) {
			return pairs[a].Start.Before(pairs[b].Start)
		}
		return pairs[a].End.Before(pairs[b].End)
	})

	out := make([]time.Time, 0, len(bounds))
	for _, p := range pairs {
		out = append(out, p.Start, p.End)
	}

	for i := 0; i < len(out); i += 2 {
		for j := i + 2; j < len(out); j += 2 {
			lo, hi, ok := mergeSpan(out[i], out[i+1], out[j], out[j+1])
			if !ok {
				continue
			}
			out[i], out[i+1] = lo, hi
			out = append(out[:j], out[j+2:]...)
			// The grown interval may now reach intervals already skipped.
			j = i
		}
	}
	return out
}

// mergeSpan reports whether the intervals [s1, e1] and [s2, e2] overlap or
// touch, and if so returns the interval covering both.
func mergeSpan(s1, e1, s2, e2 time.Time) (time.Time, time.Time, bool) {
	ts := [4]time.Time{s1, e1, s2, e2}
	for k := 0; k < len(ts)-1; k++ {
		if !ts[k].Before(ts[k+1]) {
			lo, hi := ts[0], ts[0]
			for _, t := range ts[1:] {
				if t.Before(lo) {
					lo = t
				}
				if t.After(hi) {
					hi = t
				}
			}
			return lo, hi, true
		}
	}
	return time.Time{}, time.Time{}, false
}
