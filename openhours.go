// Package openhours parses compact weekly opening-hours descriptions and
// answers questions about them.
//
// The syntax is a small subset of the OSM opening_hours format, limited to
// day-of-week rules and time ranges:
//
//	mo-fr 09:00-12:00,13:00-17:30; sa 10:00-14:00
//
// Rules are separated by ';'. Each rule is a comma-separated day list (two
// letter codes su, mo, tu, we, th, fr, sa or wrapping ranges such as fr-mo)
// followed by a comma-separated list of HH:MM[:SS] ranges. 24:00 closes at
// midnight. An empty string means always open.
//
// Example usage:
//
//	schedule, err := openhours.ParseSchedule("mo-fr 09:00-17:00")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if schedule.Match(time.Now()) {
//	    fmt.Println("open")
//	}
//	start, err := schedule.When(time.Now(), 2*time.Hour)
package openhours

import (
	"iter"
	"time"
)

// Whenable is implemented by anything that can place an activity of a given
// length in time.
type Whenable interface {
	When(t time.Time, d time.Duration) (time.Time, error)
}

var _ Whenable = (*Schedule)(nil)

// Schedule is a compiled, immutable weekly schedule. It is safe for
// concurrent use.
type Schedule struct {
	data *ScheduleData
	// bounds alternates interval starts and ends in the reference week,
	// strictly ascending.
	bounds []time.Time
}

// NewSchedule compiles parsed data into a Schedule. Data built by hand is
// checked against the same limits as Parse; out-of-range weekdays or times
// are reported as ErrMalformedInput.
func NewSchedule(data *ScheduleData) (*Schedule, error) {
	if err := validateData(data); err != nil {
		return nil, err
	}
	return &Schedule{
		data:   data,
		bounds: merge(build(data)),
	}, nil
}

// ParseSchedule parses an opening-hours string into a Schedule.
// This is the main entry point for parsing.
func ParseSchedule(input string) (*Schedule, error) {
	data, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return NewSchedule(data)
}

// MustParse parses an opening-hours string into a Schedule.
// It panics if the input is invalid.
func MustParse(input string) *Schedule {
	s, err := ParseSchedule(input)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks if an input string is a valid opening-hours expression.
func Validate(input string) bool {
	_, err := Parse(input)
	return err == nil
}

// Match reports whether t falls inside an open interval.
func (s *Schedule) Match(t time.Time) bool {
	return match(s.bounds, t)
}

// NextDur returns how long it is from t until the schedule next opens or
// closes. ok is false if the schedule is never open.
func (s *Schedule) NextDur(t time.Time) (d time.Duration, ok bool) {
	return nextDur(s.bounds, t)
}

// NextDate returns the instant of the next opening or closing after t.
// Returns nil if the schedule is never open.
func (s *Schedule) NextDate(t time.Time) *time.Time {
	d, ok := s.NextDur(t)
	if !ok {
		return nil
	}
	next := t.Add(d)
	return &next
}

// When returns the earliest instant at or after t at which an activity
// lasting d can start and finish without the schedule closing in between.
// The returned error matches ErrNoFit if no open interval is long enough.
func (s *Schedule) When(t time.Time, d time.Duration) (time.Time, error) {
	return when(s.bounds, t, d)
}

// Transitions returns a lazy iterator of open/close changes after `from`.
func (s *Schedule) Transitions(from time.Time) iter.Seq[Transition] {
	return Transitions(s, from)
}

// Between returns a bounded iterator of transitions where `from < At <= to`.
func (s *Schedule) Between(from, to time.Time) iter.Seq[Transition] {
	return Between(s, from, to)
}

// Intervals returns the merged open intervals of the reference week, which
// starts on Sunday 2017-01-01 00:00 UTC.
func (s *Schedule) Intervals() []Interval {
	out := make([]Interval, 0, len(s.bounds)/2)
	for i := 0; i+1 < len(s.bounds); i += 2 {
		out = append(out, Interval{Start: s.bounds[i], End: s.bounds[i+1]})
	}
	return out
}

// IsEmpty reports whether the schedule is never open.
func (s *Schedule) IsEmpty() bool {
	return len(s.bounds) == 0
}

// IsAlwaysOpen reports whether the schedule covers the whole week.
func (s *Schedule) IsAlwaysOpen() bool {
	return len(s.bounds) == 2 && s.bounds[0].Equal(weekStart) && s.bounds[1].Equal(weekEnd)
}

// String renders the schedule in canonical form.
func (s *Schedule) String() string {
	return Display(s)
}

// Data returns the underlying ScheduleData.
func (s *Schedule) Data() *ScheduleData {
	return s.data
}
