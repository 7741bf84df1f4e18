package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts reminder time expressions to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new time parser for the given IANA timezone string,
// e.g. "Europe/Moscow".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

var (
	inDurationRe = regexp.MustCompile(`^in (\d+) (minute|minutes|min|hour|hours|day|days|week|weeks)$`)
	clockRe      = regexp.MustCompile(`^(?:at )?(\d{1,2}):(\d{2})$`)
	tomorrowRe   = regexp.MustCompile(`^tomorrow(?: at (\d{1,2}):(\d{2}))?$`)
	weekdayRe    = regexp.MustCompile(`^(?:next |on )?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)(?: at (\d{1,2}):(\d{2}))?$`)
)

// Parse converts a reminder time expression to an absolute time.Time.
// The baseTime is the reference point (usually time.Now()). Supported
// forms: "in 15 minutes" / "in 2 hours" / "in 3 days", "at 09:00" or a
// bare "09:00" (rolled to the next day when already past), "tomorrow",
// "tomorrow at 18:30", and "next friday at 10:00".
func (p *Parser) Parse(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))
	base := baseTime.In(p.location)

	if m := inDurationRe.FindStringSubmatch(expr); m != nil {
		return p.parseInDuration(m, base)
	}

	if m := clockRe.FindStringSubmatch(expr); m != nil {
		return p.parseClock(m[1], m[2], base)
	}

	if m := tomorrowRe.FindStringSubmatch(expr); m != nil {
		return p.parseTomorrow(m, base)
	}

	if m := weekdayRe.FindStringSubmatch(expr); m != nil {
		return p.parseWeekday(m, base)
	}

	return time.Time{}, fmt.Errorf("unrecognized time expression: %q", expr)
}

// parseInDuration handles "in 15 minutes", "in 2 hours", "in 3 days".
func (p *Parser) parseInDuration(m []string, base time.Time) (time.Time, error) {
	amount, err := strconv.Atoi(m[1])
	if err != nil || amount <= 0 {
		return time.Time{}, fmt.Errorf("invalid duration amount: %q", m[1])
	}

	switch unit := m[2]; {
	case strings.HasPrefix(unit, "min"):
		return base.Add(time.Duration(amount) * time.Minute), nil
	case strings.HasPrefix(unit, "hour"):
		return base.Add(time.Duration(amount) * time.Hour), nil
	case strings.HasPrefix(unit, "day"):
		return base.AddDate(0, 0, amount), nil
	case strings.HasPrefix(unit, "week"):
		return base.AddDate(0, 0, amount*7), nil
	default:
		return time.Time{}, fmt.Errorf("unknown time unit: %q", unit)
	}
}

// parseClock handles "at 09:00" and bare "09:00". A clock time that has
// already passed today rolls forward to the same time tomorrow.
func (p *Parser) parseClock(hourStr, minStr string, base time.Time) (time.Time, error) {
	hour, minute, err := clockParts(hourStr, minStr)
	if err != nil {
		return time.Time{}, err
	}

	due := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, p.location)
	if !due.After(base) {
		due = due.AddDate(0, 0, 1)
	}
	return due, nil
}

// parseTomorrow handles "tomorrow" (same clock time next day) and
// "tomorrow at 18:30".
func (p *Parser) parseTomorrow(m []string, base time.Time) (time.Time, error) {
	next := base.AddDate(0, 0, 1)
	if m[1] == "" {
		return next, nil
	}

	hour, minute, err := clockParts(m[1], m[2])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(next.Year(), next.Month(), next.Day(), hour, minute, 0, 0, p.location), nil
}

// parseWeekday handles "next friday" / "on monday at 10:00". Without an
// explicit clock time the reminder lands at 09:00.
func (p *Parser) parseWeekday(m []string, base time.Time) (time.Time, error) {
	weekdays := map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}

	target := weekdays[m[1]]
	daysUntil := int(target - base.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	hour, minute := 9, 0
	if m[2] != "" {
		var err error
		hour, minute, err = clockParts(m[2], m[3])
		if err != nil {
			return time.Time{}, err
		}
	}

	day := base.AddDate(0, 0, daysUntil)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.location), nil
}

func clockParts(hourStr, minStr string) (int, int, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour: %q", hourStr)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute: %q", minStr)
	}
	return hour, minute, nil
}
