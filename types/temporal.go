package types

import (
	"fmt"
	"time"
)

// DateValue represents a calendar date without a time of day
type DateValue struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a date value
func NewDate(year int, month time.Month, day int) DateValue {
	return DateValue{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date in local time
func Today() DateValue {
	y, m, d := time.Now().Date()
	return DateValue{Year: y, Month: m, Day: d}
}

// Time returns the date at midnight UTC, for calendar arithmetic
func (d DateValue) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Type returns the FEEL type
func (d DateValue) Type() TypeCode {
	return TYPE_DATE
}

// String returns the ISO form YYYY-MM-DD
func (d DateValue) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Truthy returns whether the value is truthy; dates always are
func (d DateValue) Truthy() bool {
	return true
}

// Equal compares two values for equality
func (d DateValue) Equal(other Value) bool {
	if o, ok := other.(DateValue); ok {
		return d == o
	}
	return false
}

// Cmp orders two dates chronologically
func (d DateValue) Cmp(o DateValue) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	}
	return cmpInt(d.Day, o.Day)
}

// TimeValue represents a wall-clock time with an optional zone.
// A nil Loc means the time is naive.
type TimeValue struct {
	Hour   int
	Minute int
	Second int
	Loc    *time.Location
}

// NewTime creates a time value; loc may be nil for a naive time
func NewTime(hour, minute, second int, loc *time.Location) TimeValue {
	return TimeValue{Hour: hour, Minute: minute, Second: second, Loc: loc}
}

// Type returns the FEEL type
func (t TimeValue) Type() TypeCode {
	return TYPE_TIME
}

// String returns the ISO form HH:MM:SS with a zone suffix when present
func (t TimeValue) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Loc == nil {
		return s
	}
	if t.Loc == time.UTC {
		return s + "Z"
	}
	return s + "@" + t.Loc.String()
}

// Truthy returns whether the value is truthy; times always are
func (t TimeValue) Truthy() bool {
	return true
}

// Equal compares two values for equality. Naive and zoned times are
// never equal to each other.
func (t TimeValue) Equal(other Value) bool {
	o, ok := other.(TimeValue)
	if !ok {
		return false
	}
	if t.Hour != o.Hour || t.Minute != o.Minute || t.Second != o.Second {
		return false
	}
	return zoneEqual(t.Loc, o.Loc)
}

// Cmp orders two times. Zoned times compare on a shared reference day so
// the offsets take part; naive times compare by wall clock.
func (t TimeValue) Cmp(o TimeValue) int {
	if t.Loc != nil && o.Loc != nil {
		ref := t.onRef()
		oref := o.onRef()
		switch {
		case ref.Before(oref):
			return -1
		case ref.After(oref):
			return 1
		}
		return 0
	}
	return cmpInt(t.Hour*3600+t.Minute*60+t.Second, o.Hour*3600+o.Minute*60+o.Second)
}

func (t TimeValue) onRef() time.Time {
	loc := t.Loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(2000, time.January, 1, t.Hour, t.Minute, t.Second, 0, loc)
}

// DateTimeValue combines a date and a wall-clock time; the zone comes
// from the time component
type DateTimeValue struct {
	Date  DateValue
	Clock TimeValue
}

// NewDateTime creates a combined date-and-time value
func NewDateTime(d DateValue, t TimeValue) DateTimeValue {
	return DateTimeValue{Date: d, Clock: t}
}

// Time returns the instant; naive values are anchored to UTC so two
// naive date-times still compare by wall clock
func (dt DateTimeValue) Time() time.Time {
	loc := dt.Clock.Loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(dt.Date.Year, dt.Date.Month, dt.Date.Day,
		dt.Clock.Hour, dt.Clock.Minute, dt.Clock.Second, 0, loc)
}

// Type returns the FEEL type
func (dt DateTimeValue) Type() TypeCode {
	return TYPE_DATETIME
}

// String returns the ISO form date T time
func (dt DateTimeValue) String() string {
	return dt.Date.String() + "T" + dt.Clock.String()
}

// Truthy returns whether the value is truthy; date-times always are
func (dt DateTimeValue) Truthy() bool {
	return true
}

// Equal compares two values for equality. Zoned date-times are equal
// when they name the same instant; a naive value never equals a zoned
// one.
func (dt DateTimeValue) Equal(other Value) bool {
	o, ok := other.(DateTimeValue)
	if !ok {
		return false
	}
	if (dt.Clock.Loc == nil) != (o.Clock.Loc == nil) {
		return false
	}
	return dt.Time().Equal(o.Time())
}

// Cmp orders two date-times by instant; naive values anchor to UTC
func (dt DateTimeValue) Cmp(o DateTimeValue) int {
	a, b := dt.Time(), o.Time()
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Weekday returns the day of the week of a date
func (d DateValue) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func zoneEqual(a, b *time.Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	// Fixed-offset zones made by separate FixedZone calls carry the
	// same name exactly when they were built from the same literal.
	return a.String() == b.String()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
