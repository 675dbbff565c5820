package types

import "strings"

// ListValue represents a FEEL list. Lists are immutable once built;
// evaluation never rewrites a constructed value.
type ListValue struct {
	elems []Value
}

// NewList creates a new list value from the given elements
func NewList(elems ...Value) ListValue {
	return ListValue{elems: elems}
}

// Type returns the FEEL type
func (l ListValue) Type() TypeCode {
	return TYPE_LIST
}

// String returns the FEEL literal representation
func (l ListValue) String() string {
	if len(l.elems) == 0 {
		return "[]"
	}
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Truthy returns whether the value is truthy
// Non-empty lists are truthy, empty lists are falsy
func (l ListValue) Truthy() bool {
	return len(l.elems) > 0
}

// Equal compares two values for equality (deep comparison)
func (l ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(l.elems) != len(o.elems) {
		return false
	}
	for i := range l.elems {
		if !l.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of elements
func (l ListValue) Len() int {
	return len(l.elems)
}

// Elements returns the internal slice for iteration; callers must not
// modify it
func (l ListValue) Elements() []Value {
	return l.elems
}

// Contains reports deep membership of v
func (l ListValue) Contains(v Value) bool {
	for _, e := range l.elems {
		if e.Equal(v) {
			return true
		}
	}
	return false
}
