package vibes

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestVectorScenarios(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})
			result := runScript(t, st, `
a = vec.new(1, 0, 0)
b = vec.new(0, 1, 0)
[vec.dot3(a, b), vec.length3(vec.new(3, 4, 0)), vec.cross(a, b), vec.zero + vec.one]
`)
			elems := tableElements(t, result)
			if len(elems) != 4 {
				t.Fatalf("expected 4 results, got %d", len(elems))
			}
			if got := elems[0].Float(); got != 0 {
				t.Fatalf("dot3 mismatch: got %v want 0", got)
			}
			if got := elems[1].Float(); got != 5 {
				t.Fatalf("length3 mismatch: got %v want 5", got)
			}
			requireComponents(t, st, elems[2], [4]float32{0, 0, 1, 0})
			requireComponents(t, st, elems[3], [4]float32{1, 1, 1, 1})
		})
	}
}

func TestVectorOperators(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})
			result := runScript(t, st, `
v = vec.new(1, 2, 3, 4)
w = vec.new(4, 3, 2, 1)
[v + w, v - w, 2 * v, v * 2, v * w, v / 2, -v, vec.add(v, w), vec.unm(w)]
`)
			elems := tableElements(t, result)
			want := [][4]float32{
				{5, 5, 5, 5},
				{-3, -1, 1, 3},
				{2, 4, 6, 8},
				{2, 4, 6, 8},
				{4, 6, 6, 4},
				{0.5, 1, 1.5, 2},
				{-1, -2, -3, -4},
				{5, 5, 5, 5},
				{-4, -3, -2, -1},
			}
			if len(elems) != len(want) {
				t.Fatalf("expected %d results, got %d", len(want), len(elems))
			}
			for i := range want {
				requireComponents(t, st, elems[i], want[i])
			}
		})
	}
}

func TestVectorConstructorArguments(t *testing.T) {
	st := newTestState(t, Config{})

	requireComponents(t, st, runScript(t, st, `vec.new(1, nil, 3)`), [4]float32{1, 0, 3, 0})
	requireComponents(t, st, runScript(t, st, `vec.new()`), [4]float32{})
	requireComponents(t, st, runScript(t, st, `vec.new(1.5)`), [4]float32{1.5, 0, 0, 0})

	_, err := runScriptErr(t, st, `vec.new(1, 2, 3, 4, 5)`)
	requireErrorContains(t, err, "bad argument #5 to 'new' (at most 4 components expected)")

	_, err = runScriptErr(t, st, `vec.new(1, "x")`)
	requireErrorContains(t, err, "bad argument #2 to 'new' (expected number, got string)")
	requireRuntimeErrorType(t, err, runtimeErrorTypeType)
}

func TestNativeVectorsAreImmutable(t *testing.T) {
	st := newTestState(t, Config{VectorKind: VectorKindNative})

	_, err := runScriptErr(t, st, `
v = vec.new(1, 2, 3, 4)
v[1] = 5
`)
	requireErrorContains(t, err, "vector values are immutable")
	requireRuntimeErrorType(t, err, runtimeErrorTypeType)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	if got := runScript(t, st, `v[1]`); got.Float() != 1 {
		t.Fatalf("vector changed after failed assignment: got %v", got)
	}

	_, err = runScriptErr(t, st, `vec.set(v, 1, 5)`)
	requireErrorContains(t, err, "attempt to call nil value")
}

func TestBoxedVectorGetSetRoundTrip(t *testing.T) {
	st := newTestState(t, Config{VectorKind: VectorKindBoxed})

	result := runScript(t, st, `
v = vec.new()
for i in 1..4
  v[i] = i * 10
end
w = v
w[1] = 99
vec.set(v, 3, 7.5)
[vec.get(v, 1), v[2], vec.get(v, 3), v[4]]
`)
	elems := tableElements(t, result)
	want := []float64{99, 20, 7.5, 40}
	for i, w := range want {
		if got := elems[i].Float(); got != w {
			t.Fatalf("component %d mismatch: got %v want %v", i+1, got, w)
		}
	}

	for i := 1; i <= 4; i++ {
		got := runScript(t, st, fmt.Sprintf("vec.set(v, %d, %d.25)\nvec.get(v, %d)", i, i, i))
		if want := float64(i) + 0.25; got.Float() != want {
			t.Fatalf("round trip %d: got %v want %v", i, got, want)
		}
	}
}

func TestVectorComponentIndexRange(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})
			runScript(t, st, `v = vec.new(1, 2, 3, 4)`)

			for _, idx := range []string{"0", "5", "1.5", "-1"} {
				_, err := runScriptErr(t, st, "v["+idx+"]")
				requireErrorContains(t, err, "bad argument #2 to 'index' (index out of range)")
				requireRuntimeErrorType(t, err, runtimeErrorTypeRange)
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Fatalf("index %s: expected ErrIndexOutOfRange, got %v", idx, err)
				}
			}

			_, err := runScriptErr(t, st, `vec.get(v, 5)`)
			requireErrorContains(t, err, "bad argument #2 to 'get' (index out of range)")

			_, err = runScriptErr(t, st, `v["x"]`)
			requireErrorContains(t, err, "bad argument #2 to 'index' (expected number, got string)")
			requireRuntimeErrorType(t, err, runtimeErrorTypeType)

			if got := runScript(t, st, `v[2.0]`); got.Float() != 2 {
				t.Fatalf("integral float index: got %v want 2", got)
			}
		})
	}
}

func TestBoxedVectorAssignRange(t *testing.T) {
	st := newTestState(t, Config{VectorKind: VectorKindBoxed})
	runScript(t, st, `v = vec.new(1, 2, 3, 4)`)

	_, err := runScriptErr(t, st, `v[0] = 1`)
	requireErrorContains(t, err, "bad argument #2 to 'newindex' (index out of range)")
	requireRuntimeErrorType(t, err, runtimeErrorTypeRange)

	_, err = runScriptErr(t, st, `vec.set(v, 5, 1)`)
	requireErrorContains(t, err, "bad argument #2 to 'set' (index out of range)")

	_, err = runScriptErr(t, st, `v[1] = "x"`)
	requireErrorContains(t, err, "bad argument #3 to 'newindex' (expected number, got string)")

	requireComponents(t, st, runScript(t, st, `v`), [4]float32{1, 2, 3, 4})
}

func TestVectorDivisionByZero(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})

			_, err := runScriptErr(t, st, `vec.new(1, 2, 3, 4) / 0`)
			requireErrorContains(t, err, "bad argument #2 to 'div' (division by zero)")
			requireRuntimeErrorType(t, err, runtimeErrorTypeDivisionByZero)
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("expected ErrDivisionByZero, got %v", err)
			}
			var argErr *ArgError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected ArgError in chain, got %v", err)
			}
			if argErr.Func != "div" || argErr.Arg != 2 {
				t.Fatalf("unexpected ArgError: %+v", argErr)
			}

			_, err = runScriptErr(t, st, `vec.div(vec.one, 0.0)`)
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("expected ErrDivisionByZero from vec.div, got %v", err)
			}
		})
	}
}

func TestNumericDivisionByZero(t *testing.T) {
	st := newTestState(t, Config{})

	_, err := runScriptErr(t, st, `1 / 0`)
	requireRuntimeErrorType(t, err, runtimeErrorTypeDivisionByZero)
	requireErrorContains(t, err, "division by zero")

	_, err = runScriptErr(t, st, `7 % 0`)
	requireRuntimeErrorType(t, err, runtimeErrorTypeDivisionByZero)
	requireErrorContains(t, err, "modulo by zero")
}

func TestVectorScaleRoundTrip(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})
			result := runScript(t, st, `
v = vec.new(1.5, -2, 3.25, 8)
(v / 3) * 3
`)
			requireComponents(t, st, result, [4]float32{1.5, -2, 3.25, 8})
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})

			length := runScript(t, st, `vec.length4(vec.normalize4(vec.new(3, 4, 12, 0)))`)
			if math.Abs(length.Float()-1) > 1e-6 {
				t.Fatalf("normalized length: got %v want 1", length.Float())
			}

			n3 := runScript(t, st, `vec.normalize3(vec.new(0, 3, 4, 9))`)
			requireComponents(t, st, n3, [4]float32{0, 0.6, 0.8, 0})

			result := runScript(t, st, `
n = vec.normalize3(vec.zero)
m = vec.normalize(vec.zero)
[is_nan(n[1]), is_nan(n[2]), is_nan(n[3]), n[4], is_nan(m[4])]
`)
			elems := tableElements(t, result)
			for i := 0; i < 3; i++ {
				if !elems[i].Bool() {
					t.Fatalf("normalize3(zero) component %d is not NaN", i+1)
				}
			}
			if elems[3].Float() != 0 {
				t.Fatalf("normalize3 w component: got %v want 0", elems[3])
			}
			if !elems[4].Bool() {
				t.Fatalf("normalize(zero) w component is not NaN")
			}
		})
	}
}

func TestVectorAliases(t *testing.T) {
	st := newTestState(t, Config{VectorKind: VectorKindBoxed})
	result := runScript(t, st, `
a = vec.new(1, 2, 3, 4)
[vec.dot(a, a), vec.dot4(a, a), vec.dot3(a, a), vec.length(vec.new(0, 0, 0, 2))]
`)
	elems := tableElements(t, result)
	want := []float64{30, 30, 14, 2}
	for i, w := range want {
		if got := elems[i].Float(); got != w {
			t.Fatalf("result %d mismatch: got %v want %v", i+1, got, w)
		}
	}
}

func TestUnsupportedVectorOperands(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})

			_, err := runScriptErr(t, st, `vec.new(1) + 1`)
			requireErrorContains(t, err, "bad argument #2 to 'add'")
			requireRuntimeErrorType(t, err, runtimeErrorTypeType)

			_, err = runScriptErr(t, st, `vec.new(1) * "x"`)
			requireErrorContains(t, err, "bad argument #2 to 'mul' (expected vector or number, got string)")

			_, err = runScriptErr(t, st, `vec.dot3(vec.one, 1)`)
			requireErrorContains(t, err, "bad argument #2 to 'dot3'")
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("expected ErrTypeMismatch, got %v", err)
			}
		})
	}

	st := newTestState(t, Config{})
	_, err := runScriptErr(t, st, `[1] - 2`)
	requireErrorContains(t, err, "unsupported subtraction operands")
	requireRuntimeErrorType(t, err, runtimeErrorTypeType)
}

func TestOperatorErrorsNameVectorType(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			st := newTestState(t, Config{VectorKind: kind})
			name := "vector"
			if kind == VectorKindBoxed {
				name = BoxedVectorMetatable
			}

			cases := []struct {
				source string
				want   string
			}{
				{source: `vec.new(1) < vec.new(2)`, want: "cannot compare " + name + " with " + name},
				{source: `vec.new(1) % 2`, want: "unsupported modulo operands (" + name + " and int)"},
				{source: "for x in vec.one\n  x\nend", want: "cannot iterate over " + name},
				{source: `vec.one.x`, want: "cannot access member x of " + name},
			}
			for _, tc := range cases {
				_, err := runScriptErr(t, st, tc.source)
				requireErrorContains(t, err, tc.want)
				requireRuntimeErrorType(t, err, runtimeErrorTypeType)
			}
		})
	}
}

func TestMixedVectorKindsAreDistinct(t *testing.T) {
	st := newTestState(t, Config{VectorKind: VectorKindBoxed})
	if err := st.PushVector([4]float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("push vector: %v", err)
	}
	st.SetGlobal("native", st.Get(-1))
	st.Pop(1)

	_, err := runScriptErr(t, st, `vec.length4(native)`)
	requireErrorContains(t, err, "bad argument #1 to 'length4' (expected vec.box, got vector)")
}

func TestVectorStringAndType(t *testing.T) {
	for _, kind := range bothVectorKinds {
		t.Run(kind, func(t *testing.T) {
			cfg, out := captureConfig(kind)
			st := newTestState(t, cfg)
			result := runScript(t, st, `
v = vec.new(1, 2, 3, 4)
print(v)
[type(v), len(v), vec.zero == vec.zero, v == vec.new(1, 2, 3, 4)]
`)
			if got, want := out.String(), "vec(1.000000, 2.000000, 3.000000, 4.000000)\n"; got != want {
				t.Fatalf("print mismatch: got %q want %q", got, want)
			}
			elems := tableElements(t, result)
			wantType := "vector"
			if kind == VectorKindBoxed {
				wantType = BoxedVectorMetatable
			}
			if got := elems[0].String(); got != wantType {
				t.Fatalf("type mismatch: got %s want %s", got, wantType)
			}
			if got := elems[1].Int(); got != 4 {
				t.Fatalf("len mismatch: got %d want 4", got)
			}
			if !elems[2].Bool() {
				t.Fatalf("vec.zero should equal itself")
			}
			if elems[3].Bool() {
				t.Fatalf("distinct vectors compare by identity")
			}
		})
	}
}

func TestVectorFunctionsAreFirstClass(t *testing.T) {
	st := newTestState(t, Config{})
	result := runScript(t, st, `
f = vec.dot3
f(vec.one, vec.one)
`)
	if got := result.Float(); got != 3 {
		t.Fatalf("dot3 via alias: got %v want 3", got)
	}
}
