package openhours

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Week is the length of the recurring period.
const Week = 7 * 24 * time.Hour

// Reference week anchors. 2017-01-01 is a Sunday, so day index d of the
// week (0=Sunday) lands on January d+1 and Monday is day 1.
var (
	weekStart = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)
	weekEnd   = weekStart.Add(Week)
)

// anchor projects a weekday and time of day onto the reference week.
// Hour 24 rolls over to midnight of the following day. The weekday is not
// reduced modulo 7, so Saturday 24:00 maps to the week end.
func anchor(day time.Weekday, tod TimeOfDay) time.Time {
	d := int(day)
	h := tod.Hour
	if h == 24 {
		d++
		h = 0
	}
	return time.Date(2017, time.January, 1+d, h, tod.Minute, tod.Second, 0, time.UTC)
}

// anchorOf projects a real instant onto the reference week, keeping only
// its wall-clock weekday and time of day.
func anchorOf(t time.Time) time.Time {
	h, m, s := t.Clock()
	return time.Date(2017, time.January, 1+int(t.Weekday()), h, m, s, t.Nanosecond(), time.UTC)
}

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	spacedComma = regexp.MustCompile(` ?, ?`)
	spacedSemi  = regexp.MustCompile(` ?; ?`)
)

// clean normalizes raw input: trims it, drops trailing ';' separators,
// substitutes DefaultRule for empty input, lowercases, collapses whitespace
// and removes spaces around separators.
func clean(input string) string {
	s := strings.TrimRightFunc(input, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultRule
	}
	s = strings.ToLower(s)
	s = spaceRun.ReplaceAllString(s, " ")
	s = spacedComma.ReplaceAllString(s, ",")
	s = spacedSemi.ReplaceAllString(s, ";")
	return s
}
