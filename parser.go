package openhours

import (
	"fmt"
	"strconv"
	"time"
)

// parser is the internal parser state.
type parser struct {
	input string
}

// Parse parses an opening-hours string into a ScheduleData.
//
// Day tokens are read leniently: unknown codes and malformed day ranges are
// skipped. Time tokens are strict and the first malformed one aborts the
// whole parse.
func Parse(input string) (*ScheduleData, error) {
	p := &parser{input: clean(input)}

	data := &ScheduleData{Input: p.input}
	for _, seg := range splitSegments(p.input, 0, ';') {
		rule, err := p.parseRule(seg)
		if err != nil {
			return nil, err
		}
		data.Rules = append(data.Rules, rule)
	}
	return data, nil
}

func (p *parser) error(message string, span Span) error {
	return MalformedError(message, span, p.input)
}

// --- Grammar productions ---

func (p *parser) parseRule(seg segment) (Rule, error) {
	parts := fields(seg)
	if len(parts) != 2 {
		span := seg.span
		if len(parts) > 2 {
			span = Span{parts[2].span.Start, seg.span.End}
		}
		return Rule{}, p.error(
			fmt.Sprintf("expected '<days> <times>', got %d field(s)", len(parts)),
			span,
		)
	}

	rule := Rule{
		Days: resolveDays(parts[0].text),
		Span: seg.span,
	}
	for _, item := range parts[1].split(',') {
		r, err := p.parseTimeRange(item)
		if err != nil {
			return Rule{}, err
		}
		rule.Ranges = append(rule.Ranges, r)
	}
	return rule, nil
}

// resolveDays maps a comma-separated day list to sorted, distinct weekdays.
// Unrecognized tokens are dropped.
func resolveDays(input string) []time.Weekday {
	var seen [7]bool
	for _, tok := range splitSegments(input, 0, ',') {
		str := tok.text
		switch len(str) {
		case 2: // "mo"
			if w, ok := ParseDayCode(str); ok {
				seen[w] = true
			}
		case 5: // "tu-fr"
			if str[2] != '-' {
				continue
			}
			from, ok := ParseDayCode(str[:2])
			if !ok {
				continue
			}
			to, ok := ParseDayCode(str[3:])
			if !ok {
				continue
			}
			end := int(to)
			if end < int(from) {
				end += 7
			}
			for i := int(from); i <= end; i++ {
				seen[i%7] = true
			}
		}
	}

	var days []time.Weekday
	for i, ok := range seen {
		if ok {
			days = append(days, time.Weekday(i))
		}
	}
	return days
}

func (p *parser) parseTimeRange(seg segment) (TimeRange, error) {
	ends := seg.split('-')
	if len(ends) != 2 {
		return TimeRange{}, p.error("expected time range 'HH:MM-HH:MM'", seg.span)
	}
	from, err := p.parseTime(ends[0])
	if err != nil {
		return TimeRange{}, err
	}
	to, err := p.parseTime(ends[1])
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{From: from, To: to}, nil
}

// parseTime reads "HH:MM" or "HH:MM:SS".
func (p *parser) parseTime(seg segment) (TimeOfDay, error) {
	parts := seg.split(':')
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, p.error("expected time 'HH:MM' or 'HH:MM:SS'", seg.span)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := p.parseField(part)
		if err != nil {
			return TimeOfDay{}, err
		}
		nums[i] = n
	}

	tod := TimeOfDay{Hour: nums[0], Minute: nums[1], Second: nums[2]}
	if msg, field := checkTime(tod); msg != "" {
		span := seg.span
		if field >= 0 {
			span = parts[field].span
		}
		return TimeOfDay{}, p.error(msg, span)
	}
	return tod, nil
}

// checkTime returns why tod is not a valid time of day, or "" if it is.
// field is the offending component (0 hour, 1 minute, 2 second), or -1 when
// the time as a whole is wrong.
func checkTime(tod TimeOfDay) (msg string, field int) {
	switch {
	case tod.Hour < 0 || tod.Hour > 24:
		return "hour out of range (0-24)", 0
	case tod.Minute < 0 || tod.Minute > 59:
		return "minute out of range (0-59)", 1
	case tod.Second < 0 || tod.Second > 59:
		return "second out of range (0-59)", 2
	case tod.Hour == 24 && (tod.Minute != 0 || tod.Second != 0):
		return "24:00 is the only valid time with hour 24", -1
	}
	return "", 0
}

// validateData applies the parser's limits to data that did not come from
// Parse.
func validateData(data *ScheduleData) error {
	if data == nil {
		return MalformedError("schedule data is nil", Span{}, "")
	}
	for _, rule := range data.Rules {
		for _, day := range rule.Days {
			if day < time.Sunday || day > time.Saturday {
				return MalformedError(fmt.Sprintf("weekday %d out of range (0-6)", int(day)), rule.Span, data.Input)
			}
		}
		for _, r := range rule.Ranges {
			for _, tod := range [2]TimeOfDay{r.From, r.To} {
				if msg, _ := checkTime(tod); msg != "" {
					return MalformedError(msg, rule.Span, data.Input)
				}
			}
		}
	}
	return nil
}

func (p *parser) parseField(seg segment) (int, error) {
	if len(seg.text) == 0 || len(seg.text) > 2 {
		return 0, p.error("expected 1 or 2 digits", seg.span)
	}
	for i := 0; i < len(seg.text); i++ {
		if !isDigit(seg.text[i]) {
			return 0, p.error("expected 1 or 2 digits", seg.span)
		}
	}
	n, err := strconv.Atoi(seg.text)
	if err != nil {
		return 0, p.error("invalid number", seg.span)
	}
	return n, nil
}
