package vibes

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

func builtinAssert(st *State, args []Value) (Value, error) {
	if len(args) == 0 {
		return NewNil(), fmt.Errorf("assert requires a condition argument")
	}
	cond := args[0]
	if cond.Truthy() {
		return NewNil(), nil
	}
	message := "assertion failed"
	if len(args) > 1 {
		message = args[1].String()
	}
	return NewNil(), newAssertionFailureError(message)
}

func builtinPrint(st *State, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		if arg.Kind() == KindString {
			parts[i] = arg.data.(string)
			continue
		}
		parts[i] = arg.String()
	}
	if _, err := io.WriteString(st.stdout, strings.Join(parts, " ")+"\n"); err != nil {
		return NewNil(), err
	}
	return NewNil(), nil
}

// builtinType names the kind of its argument. Boxed vectors report the
// name of their metatable.
func builtinType(st *State, args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNil(), fmt.Errorf("type expects a single value argument")
	}
	return NewString(args[0].typeName()), nil
}

func builtinLen(st *State, args []Value) (Value, error) {
	v := argAt(args, 1)
	switch {
	case v.Kind() == KindTable:
		return NewInt(int64(v.Table().Len())), nil
	case v.Kind() == KindString:
		return NewInt(int64(utf8.RuneCountInString(v.data.(string)))), nil
	case v.IsVector(), st.isBox(v):
		return NewInt(4), nil
	default:
		return NewNil(), argTypeError("len", 1, "table, string or vector", v)
	}
}

func builtinPush(st *State, args []Value) (Value, error) {
	t := argAt(args, 1)
	if t.Kind() != KindTable {
		return NewNil(), argTypeError("push", 1, "table", t)
	}
	for _, v := range args[1:] {
		st.Append(t.Table(), v)
	}
	return t, nil
}

// builtinPcall calls f with the remaining arguments and reports failure as
// a value: [true, result] or [false, message, error type]. Out of memory,
// cancellation and quota errors are not caught.
func builtinPcall(st *State, args []Value) (Value, error) {
	f := argAt(args, 1)
	if f.Kind() != KindBuiltin {
		return NewNil(), argTypeError("pcall", 1, "function", f)
	}
	base := st.Top()
	defer st.SetTop(base)

	result, callErr := f.Builtin().Fn(st, args[1:])
	if callErr != nil && isFatal(callErr) {
		return NewNil(), callErr
	}
	st.Push(result)

	t, err := st.PushTable()
	if err != nil {
		return NewNil(), err
	}
	if callErr != nil {
		st.Append(t, NewBool(false))
		st.Append(t, NewString(errorMessage(callErr)))
		st.Append(t, NewString(classifyRuntimeErrorType(callErr)))
		return newTableValue(t), nil
	}
	st.Append(t, NewBool(true))
	st.Append(t, result)
	return newTableValue(t), nil
}

func builtinCollect(st *State, args []Value) (Value, error) {
	return NewInt(int64(st.Collect())), nil
}

func builtinHeapBytes(st *State, args []Value) (Value, error) {
	return NewInt(int64(st.heap.Allocated())), nil
}
