package types

// Value is the interface all FEEL values implement
type Value interface {
	Type() TypeCode
	String() string   // canonical textual form, as produced by string()
	Equal(Value) bool // deep equality
	Truthy() bool     // FEEL truthiness rules
}
