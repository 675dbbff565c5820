package eval

import (
	"strconv"
	"strings"
	"time"

	"feel/parser"
	"feel/types"
)

// evalDateLit parses a stored YYYY-MM-DD literal into a date value
func (e *Evaluator) evalDateLit(node *parser.DateLit) (types.Value, error) {
	d, err := parseDateLiteral(node.Literal)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// evalTimeLit parses a stored HH:MM:SS literal plus its zone into a
// time value
func (e *Evaluator) evalTimeLit(node *parser.TimeLit) (types.Value, error) {
	t, err := parseTimeLiteral(node.Literal, node.TZ)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// evalDateTimeLit combines the date and time parts; the zone comes from
// the time
func (e *Evaluator) evalDateTimeLit(node *parser.DateTimeLit) (types.Value, error) {
	d, err := parseDateLiteral(node.Date.Literal)
	if err != nil {
		return nil, err
	}
	t, err := parseTimeLiteral(node.Time.Literal, node.Time.TZ)
	if err != nil {
		return nil, err
	}
	return types.NewDateTime(d, t), nil
}

// evalNow returns the current wall time as a naive date-time.
// TODO: a configurable zone; for now the value carries none.
func (e *Evaluator) evalNow(node *parser.NowExpr) (types.Value, error) {
	now := time.Now()
	y, m, d := now.Date()
	return types.NewDateTime(
		types.NewDate(y, m, d),
		types.NewTime(now.Hour(), now.Minute(), now.Second(), nil),
	), nil
}

// evalToday returns the current calendar date
func (e *Evaluator) evalToday(node *parser.TodayExpr) (types.Value, error) {
	return types.Today(), nil
}

// evalDayOfWeek names the weekday of a date or date-time
func (e *Evaluator) evalDayOfWeek(node *parser.DayOfWeekExpr, env *Environment) (types.Value, error) {
	d, err := e.evalToDate(node.Expr, env, "day of week")
	if err != nil {
		return nil, err
	}
	return types.NewStr(d.Weekday().String()), nil
}

// evalMonthOfYear names the month of a date or date-time
func (e *Evaluator) evalMonthOfYear(node *parser.MonthOfYearExpr, env *Environment) (types.Value, error) {
	d, err := e.evalToDate(node.Expr, env, "month of year")
	if err != nil {
		return nil, err
	}
	return types.NewStr(d.Month.String()), nil
}

// evalToDate evaluates an operand that must be a date or date-time and
// returns its date part
func (e *Evaluator) evalToDate(expr parser.Expr, env *Environment, op string) (types.DateValue, error) {
	val, err := e.Eval(expr, env)
	if err != nil {
		return types.DateValue{}, err
	}
	switch v := val.(type) {
	case types.DateValue:
		return v, nil
	case types.DateTimeValue:
		return v.Date, nil
	}
	return types.DateValue{}, types.NewEvaluationError("%s expects a date or date and time, got %s", op, val.Type())
}

// parseDateLiteral reads YYYY-MM-DD, rejecting impossible dates
func parseDateLiteral(s string) (types.DateValue, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return types.DateValue{}, types.NewEvaluationError("invalid date literal %q", s)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return types.DateValue{}, types.NewEvaluationError("invalid date literal %q", s)
	}
	// time.Date normalizes out-of-range components; a round trip
	// detects them
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return types.DateValue{}, types.NewEvaluationError("invalid date literal %q", s)
	}
	return types.NewDate(year, time.Month(month), day), nil
}

// parseTimeLiteral reads HH:MM[:SS] and resolves the zone suffix
func parseTimeLiteral(s string, tz *parser.TZInfo) (types.TimeValue, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return types.TimeValue{}, types.NewEvaluationError("invalid time literal %q", s)
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	second := 0
	var err3 error
	if len(parts) == 3 {
		second, err3 = strconv.Atoi(parts[2])
	}
	if err1 != nil || err2 != nil || err3 != nil ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return types.TimeValue{}, types.NewEvaluationError("invalid time literal %q", s)
	}

	loc, err := resolveZone(tz)
	if err != nil {
		return types.TimeValue{}, err
	}
	return types.NewTime(hour, minute, second, loc), nil
}

// resolveZone turns a parsed zone suffix into a location: named zones
// load from the tz database, offsets become fixed zones named by their
// literal
func resolveZone(tz *parser.TZInfo) (*time.Location, error) {
	if tz == nil {
		return nil, nil
	}
	switch tz.Kind {
	case parser.TZName:
		if tz.Value == "UTC" {
			return time.UTC, nil
		}
		loc, err := time.LoadLocation(tz.Value)
		if err != nil {
			return nil, types.NewEvaluationError("unknown timezone %q", tz.Value)
		}
		return loc, nil
	case parser.TZOffset:
		hoursPart, minutesPart, found := strings.Cut(tz.Value, ":")
		if !found {
			return nil, types.NewEvaluationError("invalid timezone offset %q", tz.Value)
		}
		hours, err1 := strconv.Atoi(hoursPart)
		minutes, err2 := strconv.Atoi(minutesPart)
		if err1 != nil || err2 != nil {
			return nil, types.NewEvaluationError("invalid timezone offset %q", tz.Value)
		}
		sign := 1
		if strings.HasPrefix(tz.Value, "-") {
			sign = -1
		}
		if hours < 0 {
			hours = -hours
		}
		offset := sign * (hours*60 + minutes) * 60
		return time.FixedZone(tz.Value, offset), nil
	}
	return nil, types.NewEvaluationError("invalid timezone")
}
