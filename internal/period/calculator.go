// backend-go/internal/period/calculator.go
package period

import (
	"fmt"
	"math"
	"time"

	"github.com/sellora/salesboard/backend-go/internal/domain"
)

// Token is a named period selector from the dashboard UI.
type Token string

const (
	TokenToday       Token = "today"
	TokenYesterday   Token = "yesterday"
	TokenThisWeek    Token = "this-week"
	TokenLastWeek    Token = "last-week"
	TokenThisMonth   Token = "this-month"
	TokenLastMonth   Token = "last-month"
	TokenLast3Months Token = "last-3-months"
	TokenLast6Months Token = "last-6-months"
	TokenAll         Token = "all"
	TokenCustom      Token = "custom"
)

var knownTokens = map[Token]bool{
	TokenToday:       true,
	TokenYesterday:   true,
	TokenThisWeek:    true,
	TokenLastWeek:    true,
	TokenThisMonth:   true,
	TokenLastMonth:   true,
	TokenLast3Months: true,
	TokenLast6Months: true,
	TokenAll:         true,
	TokenCustom:      true,
}

// ParseToken validates a token from the outside world.
func ParseToken(s string) (Token, error) {
	t := Token(s)
	if !knownTokens[t] {
		return "", fmt.Errorf("%w: unknown token %q", domain.ErrInvalidPeriod, s)
	}
	return t, nil
}

// Calculator maps period tokens to inclusive date windows. It is
// data-agnostic: the dataset's earliest date (the lower bound of "all")
// and the clock are both injected.
type Calculator struct {
	epoch time.Time
	now   func() time.Time
}

func NewCalculator(epoch time.Time, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{epoch: epoch, now: now}
}

// Resolve turns a token (plus custom bounds for TokenCustom) into a window.
// Custom requires both bounds and start <= end.
func (c *Calculator) Resolve(token Token, customStart, customEnd *time.Time) (domain.PeriodWindow, error) {
	now := c.now()

	switch token {
	case TokenToday:
		return window(now, now), nil
	case TokenYesterday:
		y := now.AddDate(0, 0, -1)
		return window(y, y), nil
	case TokenThisWeek:
		return window(mondayOf(now), now), nil
	case TokenLastWeek:
		monday := mondayOf(now).AddDate(0, 0, -7)
		return window(monday, monday.AddDate(0, 0, 6)), nil
	case TokenThisMonth:
		return window(firstOfMonth(now), now), nil
	case TokenLastMonth:
		first := firstOfMonth(now).AddDate(0, -1, 0)
		return window(first, first.AddDate(0, 1, -1)), nil
	case TokenLast3Months:
		return window(firstOfMonth(now).AddDate(0, -2, 0), now), nil
	case TokenLast6Months:
		return window(firstOfMonth(now).AddDate(0, -5, 0), now), nil
	case TokenAll:
		return window(c.epoch, now), nil
	case TokenCustom:
		if customStart == nil || customEnd == nil {
			return domain.PeriodWindow{}, fmt.Errorf("%w: custom period requires both bounds", domain.ErrInvalidPeriod)
		}
		if customEnd.Before(*customStart) {
			return domain.PeriodWindow{}, fmt.Errorf("%w: custom end before start", domain.ErrInvalidPeriod)
		}
		return window(*customStart, *customEnd), nil
	default:
		return domain.PeriodWindow{}, fmt.Errorf("%w: unknown token %q", domain.ErrInvalidPeriod, token)
	}
}

// Previous derives the comparison baseline: the chronologically preceding
// window of equal length. Month-based tokens align to full calendar months,
// custom windows shift by their own day count. "all" has no baseline and
// returns ok=false; callers must treat that as "no comparison", not zero.
func (c *Calculator) Previous(w domain.PeriodWindow, token Token) (domain.PeriodWindow, bool) {
	switch token {
	case TokenToday, TokenYesterday:
		d := w.Start.AddDate(0, 0, -1)
		return window(d, d), true
	case TokenThisWeek, TokenLastWeek:
		monday := mondayOf(w.Start).AddDate(0, 0, -7)
		return window(monday, monday.AddDate(0, 0, 6)), true
	case TokenThisMonth, TokenLastMonth:
		first := firstOfMonth(w.Start).AddDate(0, -1, 0)
		return window(first, first.AddDate(0, 1, -1)), true
	case TokenLast3Months:
		return monthsBefore(w.Start, 3), true
	case TokenLast6Months:
		return monthsBefore(w.Start, 6), true
	case TokenAll:
		return domain.PeriodWindow{}, false
	case TokenCustom:
		days := dayCount(w)
		end := w.Start.AddDate(0, 0, -1)
		start := end.AddDate(0, 0, -(days - 1))
		return window(start, end), true
	default:
		return domain.PeriodWindow{}, false
	}
}

// monthsBefore returns the n full calendar months immediately preceding
// the month containing t.
func monthsBefore(t time.Time, n int) domain.PeriodWindow {
	first := firstOfMonth(t).AddDate(0, -n, 0)
	return window(first, first.AddDate(0, n, -1))
}

// mondayOf returns the Monday of t's ISO week. Sunday counts as day 7 of
// the running week, not day 0.
func mondayOf(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, -(wd - 1))
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// window builds an inclusive window: start 00:00:00.000, end 23:59:59.999.
func window(start, end time.Time) domain.PeriodWindow {
	return domain.PeriodWindow{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location()),
	}
}

// dayCount is DST-safe: midnights are rounded, not truncated.
func dayCount(w domain.PeriodWindow) int {
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, w.Start.Location())
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, w.End.Location())
	return int(math.Round(end.Sub(start).Hours()/24)) + 1
}
