package types

import "strconv"

// NumberValue represents a FEEL number. Numbers are integer-preferring:
// a literal without a fractional part is carried as an int64 and only
// operations that lose integrality promote to float64. Either payload
// compares and mixes with the other as an ordinary real number.
type NumberValue struct {
	isInt bool
	i     int64
	f     float64
}

// NewInt creates an integral number value
func NewInt(v int64) NumberValue {
	return NumberValue{isInt: true, i: v}
}

// NewFloat creates a floating-point number value
func NewFloat(v float64) NumberValue {
	return NumberValue{isInt: false, f: v}
}

// ParseNumber converts numeric source text, preferring the integral form
func ParseNumber(s string) (NumberValue, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NumberValue{}, err
	}
	return NewFloat(f), nil
}

// IsInt reports whether the number carries an integral payload
func (n NumberValue) IsInt() bool {
	return n.isInt
}

// Int returns the integral payload; only meaningful when IsInt is true
func (n NumberValue) Int() int64 {
	if n.isInt {
		return n.i
	}
	return int64(n.f)
}

// Float returns the value as a float64 regardless of payload
func (n NumberValue) Float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// Type returns the FEEL type
func (n NumberValue) Type() TypeCode {
	return TYPE_NUMBER
}

// String returns the FEEL literal representation: integers carry no
// decimal point, floats use the shortest round-tripping form
func (n NumberValue) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// Truthy returns whether the value is truthy; zero is falsy
func (n NumberValue) Truthy() bool {
	if n.isInt {
		return n.i != 0
	}
	return n.f != 0
}

// Equal compares two values for equality; 2 and 2.0 are equal
func (n NumberValue) Equal(other Value) bool {
	o, ok := other.(NumberValue)
	if !ok {
		return false
	}
	if n.isInt && o.isInt {
		return n.i == o.i
	}
	return n.Float() == o.Float()
}

// Cmp orders two numbers as reals: -1, 0 or 1
func (n NumberValue) Cmp(o NumberValue) int {
	if n.isInt && o.isInt {
		switch {
		case n.i < o.i:
			return -1
		case n.i > o.i:
			return 1
		}
		return 0
	}
	a, b := n.Float(), o.Float()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
