package eval

import "feel/types"

// validateSameType checks that two operands share a type, optionally
// requiring a specific one. Both numeric payloads are one NUMBER type,
// so integers and floats mix freely.
func validateSameType(left, right types.Value, instanceType types.TypeCode) error {
	if left.Type() != right.Type() {
		return types.NewValidationError(
			"Type of both operators must be same, get %s and %s", left.Type(), right.Type())
	}
	if instanceType != types.TYPE_ANY && left.Type() != instanceType {
		return types.NewValidationError(
			"Type of both operators must be %s, get %s and %s", instanceType, left.Type(), right.Type())
	}
	return nil
}

// validateListsLength checks that every quantifier-bound list has the
// same length
func validateListsLength(lists []types.ListValue) error {
	if len(lists) == 0 {
		return nil
	}
	want := lists[0].Len()
	for _, l := range lists[1:] {
		if l.Len() != want {
			return types.NewValidationError("lists length not equal")
		}
	}
	return nil
}
