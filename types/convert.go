package types

import (
	"fmt"
	"sort"
	"time"
)

// ValueOf converts an ordinary Go value into a FEEL Value. Hosts use it
// to assemble evaluation contexts from plain data. Supported inputs:
// nil, Value, bool, string, every integer and float kind, time.Time,
// []Value, []any, map[string]any (keys sorted for determinism), and
// GoFunc (or a bare func of that shape). Anything else panics; context
// construction is a programming-time concern.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case bool:
		return NewBool(x)
	case string:
		return NewStr(x)
	case int:
		return NewInt(int64(x))
	case int8:
		return NewInt(int64(x))
	case int16:
		return NewInt(int64(x))
	case int32:
		return NewInt(int64(x))
	case int64:
		return NewInt(x)
	case uint:
		return NewInt(int64(x))
	case uint8:
		return NewInt(int64(x))
	case uint16:
		return NewInt(int64(x))
	case uint32:
		return NewInt(int64(x))
	case uint64:
		return NewInt(int64(x))
	case float32:
		return NewFloat(float64(x))
	case float64:
		return NewFloat(x)
	case time.Time:
		y, m, d := x.Date()
		return NewDateTime(
			NewDate(y, m, d),
			NewTime(x.Hour(), x.Minute(), x.Second(), x.Location()),
		)
	case []Value:
		return NewList(x...)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = ValueOf(e)
		}
		return NewList(elems...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ctx := NewContext()
		for _, k := range keys {
			ctx.Set(k, ValueOf(x[k]))
		}
		return ctx
	case GoFunc:
		return NewFunc("", x)
	case func(args []Value) (Value, error):
		return NewFunc("", x)
	default:
		panic(fmt.Sprintf("cannot convert %T to a FEEL value", v))
	}
}

// Unwrap converts a FEEL Value back into plain Go data. Lists become
// []any, contexts map[string]any; temporal and range values come back
// as themselves since Go has no plainer equivalent.
func Unwrap(v Value) any {
	switch x := v.(type) {
	case nil, NullValue:
		return nil
	case BoolValue:
		return x.Val
	case NumberValue:
		if x.IsInt() {
			return x.Int()
		}
		return x.Float()
	case StrValue:
		return x.Value()
	case ListValue:
		out := make([]any, x.Len())
		for i, e := range x.Elements() {
			out[i] = Unwrap(e)
		}
		return out
	case *ContextValue:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			out[k] = Unwrap(val)
		}
		return out
	default:
		return v
	}
}
