package openhours

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday returns 2026-10-19 (a Monday) at hh:mm UTC.
func monday(hh, mm int) time.Time {
	return time.Date(2026, 10, 19, hh, mm, 0, 0, time.UTC)
}

func TestMatchBoundaryTies(t *testing.T) {
	s := MustParse("mo 09:00-17:00")

	assert.False(t, s.Match(monday(8, 59)))
	assert.True(t, s.Match(monday(9, 0)), "an instant equal to a start is open")
	assert.True(t, s.Match(monday(16, 59)))
	assert.False(t, s.Match(monday(17, 0)), "an instant equal to an end is closed")
	assert.True(t, s.Match(monday(17, 0).Add(-time.Nanosecond)))
}

func TestWhenFitsExactlyToEnd(t *testing.T) {
	s := MustParse("mo 09:00-17:00")

	got, err := s.When(monday(15, 0), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, monday(15, 0), got)

	got, err = s.When(monday(15, 0), 2*time.Hour+time.Second)
	require.NoError(t, err)
	assert.Equal(t, monday(9, 0).AddDate(0, 0, 7), got)
}

func TestWhenExamples(t *testing.T) {
	s := MustParse("mo 09:00-17:00")

	got, err := s.When(monday(8, 0), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, monday(9, 0), got)

	got, err = s.When(monday(16, 0), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, monday(9, 0).AddDate(0, 0, 7), got)

	_, err = s.When(monday(9, 0), 9*time.Hour)
	assert.True(t, errors.Is(err, ErrNoFit))
}

func TestWhenNonPositiveDuration(t *testing.T) {
	s := MustParse("mo 09:00-17:00")

	for _, d := range []time.Duration{0, -time.Hour} {
		got, err := s.When(monday(12, 0), d)
		require.NoError(t, err)
		assert.Equal(t, monday(12, 0), got)

		got, err = s.When(monday(18, 0), d)
		require.NoError(t, err)
		assert.Equal(t, monday(9, 0).AddDate(0, 0, 7), got)
	}
}

func TestWhenWholeWeek(t *testing.T) {
	s := MustParse("")

	got, err := s.When(monday(12, 0), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, monday(12, 0), got)

	// The week is stored as one interval ending at Sunday 00:00, so a span
	// crossing that edge waits for the next week to start.
	got, err = s.When(time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), got)

	_, err = s.When(monday(12, 0), Week+time.Second)
	assert.True(t, errors.Is(err, ErrNoFit))
}

func TestWhenOvernightAcrossWeekEdge(t *testing.T) {
	wed := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)

	// The same eight-hour overnight range fits a six-hour span whichever day
	// it starts on.
	for day, want := range map[string]time.Time{
		"fr": time.Date(2026, 10, 23, 20, 0, 0, 0, time.UTC),
		"sa": time.Date(2026, 10, 24, 20, 0, 0, 0, time.UTC),
	} {
		t.Run(day, func(t *testing.T) {
			s := MustParse(day + " 20:00-04:00")
			got, err := s.When(wed, 6*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			_, err = s.When(wed, 8*time.Hour+time.Second)
			assert.True(t, errors.Is(err, ErrNoFit))
		})
	}

	// Starting inside the saturday part.
	s := MustParse("sa 20:00-04:00")
	sat := time.Date(2026, 10, 24, 23, 0, 0, 0, time.UTC)
	got, err := s.When(sat, 5*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, sat, got)

	// Starting inside the sunday part only the rest of it counts.
	sun := time.Date(2026, 10, 25, 3, 0, 0, 0, time.UTC)
	got, err = s.When(sun, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC), got)
}

func TestWhenKeepsCallerLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	s := MustParse("mo 09:00-17:00")

	start := time.Date(2026, 10, 19, 8, 0, 0, 123, tokyo)
	got, err := s.When(start, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, tokyo, got.Location())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 0, got.Nanosecond())
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestNextDurRoundTrip(t *testing.T) {
	s := MustParse("mo-fr 09:00-12:00,13:00-17:30:15; sa 10:00-14:00")

	cur := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	stop := cur.AddDate(0, 0, 7)
	for ; cur.Before(stop); cur = cur.Add(17 * time.Minute) {
		d, ok := s.NextDur(cur)
		require.True(t, ok)
		require.Greater(t, d, time.Duration(0))

		next := s.NextDate(cur)
		require.NotNil(t, next)
		assert.Equal(t, cur.Add(d), *next)

		// Nothing changes before the next transition, and it changes there.
		assert.Equal(t, s.Match(cur), s.Match(next.Add(-time.Nanosecond)), "at %s", cur)
		assert.NotEqual(t, s.Match(cur), s.Match(*next), "at %s", cur)
	}
}

func TestNextDurInsideIntervalIsRemainingTime(t *testing.T) {
	s := MustParse("we 10:00-18:00")
	wed := time.Date(2026, 10, 21, 13, 15, 30, 0, time.UTC)
	require.True(t, s.Match(wed))

	d, ok := s.NextDur(wed)
	require.True(t, ok)
	assert.Equal(t, 4*time.Hour+44*time.Minute+30*time.Second, d)
}

func TestNextDateSubSecond(t *testing.T) {
	s := MustParse("mo 09:00-17:00")
	start := monday(8, 0).Add(250 * time.Millisecond)

	next := s.NextDate(start)
	require.NotNil(t, next)
	assert.Equal(t, monday(9, 0), *next)
}

func TestEmptySchedule(t *testing.T) {
	s := MustParse("xx 09:00-17:00")
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Match(monday(12, 0)))

	_, ok := s.NextDur(monday(12, 0))
	assert.False(t, ok)
	assert.Nil(t, s.NextDate(monday(12, 0)))

	_, err := s.When(monday(12, 0), time.Minute)
	assert.True(t, errors.Is(err, ErrNoFit))
}

func TestDefaultScheduleAlwaysOpen(t *testing.T) {
	def := MustParse("")
	full := MustParse("su-sa 00:00-24:00")

	assert.True(t, def.IsAlwaysOpen())
	assert.Equal(t, full.Intervals(), def.Intervals())

	cur := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7*24; i++ {
		assert.True(t, def.Match(cur), "at %s", cur)
		d, ok := def.NextDur(cur)
		require.True(t, ok)
		// Time left until the end of the week.
		assert.Equal(t, time.Duration(7*24-i)*time.Hour, d)
		cur = cur.Add(time.Hour)
	}
}

func TestConcurrentReaders(t *testing.T) {
	s := MustParse("mo-fr 09:00-17:00")
	want := s.Intervals()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			base := monday(0, 0).Add(time.Duration(g) * time.Hour)
			for i := 0; i < 200; i++ {
				at := base.Add(time.Duration(i) * 7 * time.Minute)
				s.Match(at)
				s.NextDur(at)
				_, _ = s.When(at, time.Hour)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, want, s.Intervals())
}
