package vibes

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

var bothVectorKinds = []string{VectorKindNative, VectorKindBoxed}

func newTestState(t testing.TB, cfg Config) *State {
	t.Helper()
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	st, err := engine.NewState()
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	t.Cleanup(st.Close)
	return st
}

func runScriptErr(t testing.TB, st *State, source string) (Value, error) {
	t.Helper()
	script, err := st.engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return script.Run(context.Background(), st)
}

func runScript(t testing.TB, st *State, source string) Value {
	t.Helper()
	result, err := runScriptErr(t, st, source)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func requireErrorContains(t testing.TB, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if got := err.Error(); !strings.Contains(got, want) {
		t.Fatalf("unexpected error: %s", got)
	}
}

func requireRuntimeErrorType(t testing.TB, err error, want string) *RuntimeError {
	t.Helper()
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if runtimeErr.Type != want {
		t.Fatalf("error type mismatch: got %s want %s (%v)", runtimeErr.Type, want, err)
	}
	return runtimeErr
}

// components reads a vector of either kind.
func components(t testing.TB, st *State, v Value) [4]float32 {
	t.Helper()
	if c, ok := v.AsVector(); ok {
		return c
	}
	if st.isBox(v) {
		return boxComponents(v.Userdata())
	}
	t.Fatalf("expected vector, got %v", v.Kind())
	return [4]float32{}
}

func requireComponents(t testing.TB, st *State, v Value, want [4]float32) {
	t.Helper()
	got := components(t, st, v)
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Fatalf("component %d mismatch: got %v want %v", i+1, got, want)
		}
	}
}

func tableElements(t testing.TB, v Value) []Value {
	t.Helper()
	if v.Kind() != KindTable {
		t.Fatalf("expected table, got %v", v.Kind())
	}
	return v.Table().array
}

func captureConfig(kind string) (Config, *bytes.Buffer) {
	var out bytes.Buffer
	return Config{VectorKind: kind, Stdout: &out}, &out
}
