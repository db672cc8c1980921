package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/prasrvenkat/openhours"
)

// printer writes either plain text or one JSON document per command.
type printer struct {
	w    io.Writer
	json bool
}

func (p *printer) emit(v any, text string) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(p.w, text)
	return err
}

type checkResult struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
	Intervals int    `json:"intervals"`
	Empty     bool   `json:"empty"`
	Always    bool   `json:"always_open"`
}

func runCheck(env *environment) error {
	s := env.schedule
	return env.out.emit(checkResult{
		Input:     s.Data().Input,
		Canonical: s.String(),
		Intervals: len(s.Intervals()),
		Empty:     s.IsEmpty(),
		Always:    s.IsAlwaysOpen(),
	}, s.String())
}

type intervalResult struct {
	StartDay string `json:"start_day"`
	Start    string `json:"start"`
	EndDay   string `json:"end_day"`
	End      string `json:"end"`
	Duration string `json:"duration"`
}

type showResult struct {
	Canonical string           `json:"canonical"`
	Intervals []intervalResult `json:"intervals"`
}

func runShow(env *environment) error {
	ivs := env.schedule.Intervals()
	rows := make([]intervalResult, 0, len(ivs))
	text := env.schedule.String()
	for _, iv := range ivs {
		row := intervalResult{
			StartDay: openhours.DayCode(iv.StartDay()),
			Start:    iv.StartTime().String(),
			EndDay:   openhours.DayCode(iv.EndDay()),
			End:      iv.EndTime().String(),
			Duration: iv.Duration().String(),
		}
		rows = append(rows, row)
		text += fmt.Sprintf("\n  %s %s - %s %s (%s)", row.StartDay, row.Start, row.EndDay, row.End, row.Duration)
	}
	if len(rows) == 0 {
		text += "\n  never open"
	}
	return env.out.emit(showResult{Canonical: env.schedule.String(), Intervals: rows}, text)
}

type matchResult struct {
	At   time.Time `json:"at"`
	Open bool      `json:"open"`
}

func runMatch(env *environment) error {
	open := env.schedule.Match(env.at)
	text := "closed"
	if open {
		text = "open"
	}
	if err := env.out.emit(matchResult{At: env.at, Open: open}, text); err != nil {
		return err
	}
	if !open {
		return &exitError{code: exitClosed}
	}
	return nil
}

type nextResult struct {
	At   time.Time  `json:"at"`
	Open bool       `json:"open"`
	Next *time.Time `json:"next"`
	In   string     `json:"in,omitempty"`
}

func runNext(env *environment) error {
	open := env.schedule.Match(env.at)
	next := env.schedule.NextDate(env.at)
	if next == nil {
		if err := env.out.emit(nextResult{At: env.at}, "never open"); err != nil {
			return err
		}
		return &exitError{code: exitClosed}
	}

	d := next.Sub(env.at)
	verb := "opens"
	if open {
		verb = "closes"
	}
	return env.out.emit(nextResult{
		At:   env.at,
		Open: open,
		Next: next,
		In:   d.String(),
	}, fmt.Sprintf("%s at %s (in %s)", verb, next.Format(time.RFC3339), d))
}

type whenResult struct {
	At    time.Time `json:"at"`
	For   string    `json:"for"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func runWhen(env *environment) error {
	start, err := env.schedule.When(env.at, env.opts.duration)
	if err != nil {
		env.log.Info("no fit", zap.Duration("for", env.opts.duration), zap.Error(err))
		if errors.Is(err, openhours.ErrNoFit) {
			return &exitError{code: exitNoFit, err: err}
		}
		return err
	}
	d := max(env.opts.duration, 0)
	return env.out.emit(whenResult{
		At:    env.at,
		For:   d.String(),
		Start: start,
		End:   start.Add(d),
	}, start.Format(time.RFC3339))
}

type transitionResult struct {
	At   time.Time `json:"at"`
	Open bool      `json:"open"`
}

func runTransitions(env *environment) error {
	if env.opts.count < 0 {
		return usageError("--count must not be negative")
	}
	rows := []transitionResult{}
	text := ""
	if env.opts.count > 0 {
		for tr := range env.schedule.Transitions(env.at) {
			rows = append(rows, transitionResult{At: tr.At, Open: tr.Open})
			state := "closes"
			if tr.Open {
				state = "opens"
			}
			if text != "" {
				text += "\n"
			}
			text += fmt.Sprintf("%s %s", tr.At.Format(time.RFC3339), state)
			if len(rows) == env.opts.count {
				break
			}
		}
	}
	switch {
	case len(rows) > 0:
	case env.schedule.IsEmpty():
		text = "never open"
	case env.schedule.IsAlwaysOpen():
		text = "always open"
	}
	return env.out.emit(rows, text)
}
