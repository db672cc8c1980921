package openhours

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []time.Weekday
	}{
		{"single", "mo", []time.Weekday{time.Monday}},
		{"list", "fr,mo,we", []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{"range", "tu-fr", []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday}},
		{"wrapping range", "fr-mo", []time.Weekday{time.Sunday, time.Monday, time.Friday, time.Saturday}},
		{"full wrap", "mo-su", []time.Weekday{0, 1, 2, 3, 4, 5, 6}},
		{"same day range", "we-we", []time.Weekday{time.Wednesday}},
		{"duplicates", "mo,mo-tu,tu", []time.Weekday{time.Monday, time.Tuesday}},
		{"unknown code", "xx", nil},
		{"unknown range half", "mo-xx,xx-fr", nil},
		{"odd length", "mon,m,mo-tue", nil},
		{"five chars without dash", "mo_fr", nil},
		{"mixed", "sa,xx,mo-tu", []time.Weekday{time.Monday, time.Tuesday, time.Saturday}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveDays(tt.input))
		})
	}
}

func TestParseTime(t *testing.T) {
	valid := []struct {
		input string
		want  TimeOfDay
	}{
		{"09:00", TimeOfDay{9, 0, 0}},
		{"9:05", TimeOfDay{9, 5, 0}},
		{"00:00", TimeOfDay{0, 0, 0}},
		{"23:59:59", TimeOfDay{23, 59, 59}},
		{"24:00", TimeOfDay{24, 0, 0}},
		{"24:00:00", TimeOfDay{24, 0, 0}},
	}
	for _, tt := range valid {
		t.Run(tt.input, func(t *testing.T) {
			p := &parser{input: tt.input}
			got, err := p.parseTime(segment{text: tt.input, span: Span{0, len(tt.input)}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	invalid := []string{"9", "09:00:00:00", "25:00", "24:01", "24:00:01", "12:60", "12:00:60", "+1:00", "1a:00", ":00", "100:00", ""}
	for _, input := range invalid {
		t.Run("invalid/"+input, func(t *testing.T) {
			p := &parser{input: input}
			_, err := p.parseTime(segment{text: input, span: Span{0, len(input)}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
		})
	}
}

func TestParseData(t *testing.T) {
	data, err := Parse("  MO-FR  09:00-12:00 , 13:00-17:00 ; SA 10:00-14:00 ;")
	require.NoError(t, err)

	assert.Equal(t, "mo-fr 09:00-12:00,13:00-17:00;sa 10:00-14:00", data.Input)
	require.Len(t, data.Rules, 2)

	first := data.Rules[0]
	assert.Equal(t, []time.Weekday{1, 2, 3, 4, 5}, first.Days)
	assert.Equal(t, []TimeRange{
		{From: TimeOfDay{Hour: 9}, To: TimeOfDay{Hour: 12}},
		{From: TimeOfDay{Hour: 13}, To: TimeOfDay{Hour: 17}},
	}, first.Ranges)
	assert.Equal(t, "mo-fr 09:00-12:00,13:00-17:00", data.Input[first.Span.Start:first.Span.End])

	second := data.Rules[1]
	assert.Equal(t, []time.Weekday{time.Saturday}, second.Days)
	assert.Equal(t, "sa 10:00-14:00", data.Input[second.Span.Start:second.Span.End])
}

func TestParseEmptyIsDefault(t *testing.T) {
	for _, input := range []string{"", "   ", ";", " ; "} {
		data, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, DefaultRule, data.Input)
	}
}

func TestParseTrailingSeparators(t *testing.T) {
	for _, input := range []string{"mo 09:00-17:00;", "mo 09:00-17:00;;", "mo 09:00-17:00 ; ; ;\n"} {
		data, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "mo 09:00-17:00", data.Input)
		assert.Len(t, data.Rules, 1)
	}
	for _, input := range []string{";;", " ;; ; "} {
		data, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, DefaultRule, data.Input)
	}

	_, err := Parse(";mo 09:00-17:00")
	assert.True(t, errors.Is(err, ErrMalformedInput), "a leading empty rule is malformed")
}

func TestParseErrorSpan(t *testing.T) {
	tests := []struct {
		input   string
		pointAt string
	}{
		{"mo 9-17", "9"},
		{"mo 09:00-25:00", "25"},
		{"mo 09:00-10:00;tu 09:61-10:00", "61"},
		{"mo 09:00-17:00 extra", "extra"},
		{"mo 24:30-24:00", "24:30"},
		{"mo 09:00-10:00-11:00", "09:00-10:00-11:00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			var oerr *Error
			require.True(t, errors.As(err, &oerr), "expected *Error, got %v", err)
			require.NotNil(t, oerr.Span)
			assert.Equal(t, tt.pointAt, oerr.Input[oerr.Span.Start:oerr.Span.End])
		})
	}
}

func TestDisplayRich(t *testing.T) {
	_, err := Parse("mo 09:00-25:00")
	var oerr *Error
	require.True(t, errors.As(err, &oerr))

	lines := strings.Split(oerr.DisplayRich(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "error: hour out of range (0-24)", lines[0])
	assert.Equal(t, "  mo 09:00-25:00", lines[1])
	assert.Equal(t, strings.Repeat(" ", 2+9)+"^^", lines[2])

	assert.Equal(t, "error: no open interval can hold 1h0m0s", NoFitError(time.Hour).DisplayRich())
}

func TestErrorKindsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(NoFitError(time.Hour), ErrMalformedInput))
	assert.False(t, errors.Is(MalformedError("x", Span{}, "x"), ErrNoFit))
	assert.True(t, errors.Is(NoFitError(time.Hour), ErrNoFit))
}
