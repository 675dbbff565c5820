package types

import "strings"

// ContextValue represents a FEEL context: a string-keyed mapping whose
// iteration order is the insertion order of its keys. Re-setting an
// existing key replaces its value but keeps the original position.
type ContextValue struct {
	order   []string
	entries map[string]Value
}

// NewContext creates an empty context
func NewContext() *ContextValue {
	return &ContextValue{entries: make(map[string]Value)}
}

// Set binds key to val, overwriting any earlier binding
func (c *ContextValue) Set(key string, val Value) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = val
}

// Get looks up a key
func (c *ContextValue) Get(key string) (Value, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order; callers must not modify it
func (c *ContextValue) Keys() []string {
	return c.order
}

// Len returns the number of entries
func (c *ContextValue) Len() int {
	return len(c.entries)
}

// Type returns the FEEL type
func (c *ContextValue) Type() TypeCode {
	return TYPE_CONTEXT
}

// String returns the FEEL literal representation
func (c *ContextValue) String() string {
	if len(c.order) == 0 {
		return "{}"
	}
	parts := make([]string, len(c.order))
	for i, k := range c.order {
		parts[i] = k + ": " + c.entries[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Truthy returns whether the value is truthy
// Non-empty contexts are truthy, empty contexts are falsy
func (c *ContextValue) Truthy() bool {
	return len(c.entries) > 0
}

// Equal compares two values for equality. Contexts are equal when they
// hold the same keys with equal values; key order does not matter.
func (c *ContextValue) Equal(other Value) bool {
	o, ok := other.(*ContextValue)
	if !ok || len(c.entries) != len(o.entries) {
		return false
	}
	for k, v := range c.entries {
		ov, ok := o.entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
