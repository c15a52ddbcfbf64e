package vibes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func builtinToInt(st *State, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNil(), fmt.Errorf("to_int expects a single value argument")
	}

	switch args[0].Kind() {
	case KindInt:
		return args[0], nil
	case KindFloat:
		f := args[0].Float()
		if math.Trunc(f) != f {
			return NewNil(), fmt.Errorf("to_int cannot convert non-integer float")
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return NewNil(), fmt.Errorf("to_int value out of range")
		}
		return NewInt(int64(f)), nil
	case KindString:
		s := strings.TrimSpace(args[0].data.(string))
		if s == "" {
			return NewNil(), fmt.Errorf("to_int expects a numeric string")
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return NewNil(), fmt.Errorf("to_int expects a base-10 integer string")
		}
		return NewInt(n), nil
	default:
		return NewNil(), argTypeError("to_int", 1, "int, float or string", args[0])
	}
}

func builtinToFloat(st *State, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNil(), fmt.Errorf("to_float expects a single value argument")
	}

	switch args[0].Kind() {
	case KindInt:
		return NewFloat(float64(args[0].Int())), nil
	case KindFloat:
		return args[0], nil
	case KindString:
		s := strings.TrimSpace(args[0].data.(string))
		if s == "" {
			return NewNil(), fmt.Errorf("to_float expects a numeric string")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return NewNil(), fmt.Errorf("to_float expects a numeric string")
		}
		return NewFloat(f), nil
	default:
		return NewNil(), argTypeError("to_float", 1, "int, float or string", args[0])
	}
}

func builtinIsNaN(st *State, args []Value) (Value, error) {
	v := argAt(args, 1)
	if !v.IsNumber() {
		return NewNil(), argTypeError("is_nan", 1, "number", v)
	}
	return NewBool(math.IsNaN(v.Float())), nil
}
