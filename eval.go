package openhours

import (
	"iter"
	"sort"
	"time"
)

// matchIndex returns the index of the first boundary strictly after x, or
// len(bounds) if there is none. An odd result means x is inside an open
// interval.
func matchIndex(bounds []time.Time, x time.Time) int {
	return sort.Search(len(bounds), func(i int) bool {
		return bounds[i].After(x)
	})
}

func match(bounds []time.Time, t time.Time) bool {
	return matchIndex(bounds, anchorOf(t))%2 == 1
}

// nextDur returns the time from t until the next boundary crossing.
// ok is false when the schedule has no boundaries at all.
func nextDur(bounds []time.Time, t time.Time) (time.Duration, bool) {
	if len(bounds) == 0 {
		return 0, false
	}
	x := anchorOf(t)
	i := matchIndex(bounds, x)
	if i == len(bounds) {
		i = 0
	}
	xi := bounds[i]
	if !xi.After(x) {
		// Wrapped: the first boundary belongs to next week.
		xi = xi.Add(Week)
	}
	return xi.Sub(x), true
}

// when finds the earliest start at or after t of a span of length d that
// fits inside a single open interval. An interval closing at the week end
// continues into one opening at the week start, unless it is the only
// interval and covers the whole week.
func when(bounds []time.Time, t time.Time, d time.Duration) (time.Time, error) {
	n := len(bounds)
	if n == 0 {
		return time.Time{}, NoFitError(d)
	}
	if d < 0 {
		d = 0
	}

	joined := n > 2 && bounds[0].Equal(weekStart) && bounds[n-1].Equal(weekEnd)
	endAt := func(e int) time.Time {
		if joined && e == n-1 {
			return bounds[1].Add(Week)
		}
		return bounds[e]
	}

	x := anchorOf(t)
	i := matchIndex(bounds, x)

	var found *time.Time
	if i%2 == 1 {
		if !x.Add(d).After(endAt(i)) {
			found = &x
		} else {
			i += 2
		}
	} else {
		i++
	}

	// i now points at the end of a candidate interval. Walk one full lap.
	for stop := i + n; found == nil && i < stop; i += 2 {
		end := i % n
		start := bounds[end-1]
		if !start.Add(d).After(endAt(end)) {
			found = &start
		}
	}
	if found == nil {
		return time.Time{}, NoFitError(d)
	}

	at := *found
	if x.After(at) {
		at = at.Add(Week)
	}
	return t.Add(at.Sub(x)), nil
}

// --- Transitions ---

// Transition is a change of state of a schedule.
type Transition struct {
	At   time.Time
	Open bool
}

// Transitions returns a lazy iterator of state changes strictly after
// `from`. The iterator is unbounded for schedules that both open and close,
// and empty for schedules that never change state.
func Transitions(schedule *Schedule, from time.Time) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		current := from
		state := schedule.Match(from)
		idle := 0
		for {
			d, ok := schedule.NextDur(current)
			if !ok {
				return
			}
			current = current.Add(d)
			open := schedule.Match(current)
			if open == state {
				// A boundary at the week edge that is reopened right away.
				idle++
				if idle > len(schedule.bounds) {
					return
				}
				continue
			}
			idle = 0
			state = open
			if !yield(Transition{At: current, Open: open}) {
				return
			}
		}
	}
}

// Between returns a bounded iterator of transitions where `from < t.At <= to`.
func Between(schedule *Schedule, from, to time.Time) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for tr := range Transitions(schedule, from) {
			if tr.At.After(to) {
				return
			}
			if !yield(tr) {
				return
			}
		}
	}
}
