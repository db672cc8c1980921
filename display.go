package openhours

import (
	"strings"
	"time"
)

// closedForm is the canonical text of a schedule that never opens. It
// parses back into an empty schedule because zero-width ranges are dropped.
const closedForm = "su 00:00-00:00"

// displayOrder lists weekdays Monday first, the way opening hours are
// usually written.
var displayOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Display renders the schedule as a canonical string. Intervals crossing
// midnight are split per day, and days sharing the same time list are
// grouped into one rule.
func Display(schedule *Schedule) string {
	perDay := dailyRanges(schedule.Intervals())

	var rules []string
	var used [7]bool
	for _, d := range displayOrder {
		if used[d] || len(perDay[d]) == 0 {
			continue
		}
		times := formatRangeList(perDay[d])
		var days []time.Weekday
		for _, e := range displayOrder {
			if !used[e] && len(perDay[e]) > 0 && formatRangeList(perDay[e]) == times {
				days = append(days, e)
				used[e] = true
			}
		}
		rules = append(rules, formatDayList(days)+" "+times)
	}

	if len(rules) == 0 {
		return closedForm
	}
	return strings.Join(rules, "; ")
}

// dailyRanges cuts intervals at midnight and buckets the pieces by weekday.
func dailyRanges(intervals []Interval) [7][]TimeRange {
	const day = 24 * time.Hour
	var perDay [7][]TimeRange
	for _, iv := range intervals {
		start := iv.Start
		for start.Before(iv.End) {
			idx := int(start.Sub(weekStart) / day)
			midnight := weekStart.Add(time.Duration(idx+1) * day)
			end := iv.End
			if end.After(midnight) {
				end = midnight
			}
			r := TimeRange{From: timeOfDay(start), To: timeOfDay(end)}
			if end.Equal(midnight) {
				r.To = TimeOfDay{Hour: 24}
			}
			perDay[idx] = append(perDay[idx], r)
			start = end
		}
	}
	return perDay
}

func formatRangeList(ranges []TimeRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// formatDayList renders days (in displayOrder) compressing runs of three or
// more consecutive days into a range.
func formatDayList(days []time.Weekday) string {
	pos := func(w time.Weekday) int { return (int(w) + 6) % 7 }

	var parts []string
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && pos(days[j+1]) == pos(days[j])+1 {
			j++
		}
		if j-i >= 2 {
			parts = append(parts, DayCode(days[i])+"-"+DayCode(days[j]))
		} else {
			for k := i; k <= j; k++ {
				parts = append(parts, DayCode(days[k]))
			}
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
