package functions

import "feel/types"

// Field declares one named input of a function. Type is TYPE_ANY when
// any value is acceptable. Optional fields may carry a Default that
// Resolve fills in when the caller omits them.
type Field struct {
	Name     string
	Type     types.TypeCode
	Required bool
	Default  types.Value
}

// InputsSchema declares the inputs of a function. Ordering lists the
// parameter names positional arguments map onto, left to right.
type InputsSchema struct {
	Fields   []Field
	Ordering []string
}

// Validate checks a call's arguments against the schema. Positional
// arguments zip onto Ordering; more arguments than Ordering entries is
// a validation failure. Named arguments check directly. Either way the
// resolved parameters must satisfy every declared field: present
// required fields, matching types. Names the schema does not declare
// pass through untouched. A call with no arguments, and positional
// arguments on a schema without Ordering, are not checked.
func (s *InputsSchema) Validate(args []types.Value, named map[string]types.Value) error {
	params := named
	if len(args) > 0 {
		if s.Ordering == nil {
			return nil
		}
		if len(args) > len(s.Ordering) {
			return types.NewValidationError("too many arguments for inputs: got %d, at most %d", len(args), len(s.Ordering))
		}
		params = make(map[string]types.Value, len(args))
		for i, arg := range args {
			params[s.Ordering[i]] = arg
		}
	}
	if len(params) == 0 {
		return nil
	}

	for _, f := range s.Fields {
		val, ok := params[f.Name]
		if !ok {
			if f.Required {
				return types.NewValidationError("missing required input %q", f.Name)
			}
			continue
		}
		if f.Type != types.TYPE_ANY && val.Type() != f.Type {
			return types.NewValidationError("input %q must be %s, got %s", f.Name, f.Type, val.Type())
		}
	}
	return nil
}

// Resolve maps a call's arguments onto the declared parameter names and
// fills defaults for omitted optional fields. Implementations that want
// one uniform view of their inputs call this after validation.
func (s *InputsSchema) Resolve(args []types.Value, named map[string]types.Value) map[string]types.Value {
	params := make(map[string]types.Value, len(s.Fields))
	if len(args) > 0 && s.Ordering != nil {
		for i, arg := range args {
			if i >= len(s.Ordering) {
				break
			}
			params[s.Ordering[i]] = arg
		}
	} else {
		for k, v := range named {
			params[k] = v
		}
	}
	for _, f := range s.Fields {
		if _, ok := params[f.Name]; !ok && f.Default != nil {
			params[f.Name] = f.Default
		}
	}
	return params
}
