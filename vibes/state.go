package vibes

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/mgomes/vecscript/heap"
)

// ErrStateClosed is returned when a closed State is used to run scripts.
var ErrStateClosed = errors.New("vibes: state closed")

// State is one isolated interpreter: a value stack, globals, a registry of
// host references and the heap that owns every table, userdata and vector
// created while running scripts in it. Stack, globals and registry are the
// collector roots.
//
// A State is not safe for concurrent use.
type State struct {
	engine *Engine
	heap   *heap.Heap
	log    *zap.Logger
	stdout io.Writer

	stack    []Value
	globals  *Env
	registry map[int]Value
	nextRef  int

	metatables map[string]*Metatable
	closed     bool
}

func newState(e *Engine) (*State, error) {
	cfg := e.config.GC
	cfg.Limit = e.config.MemoryQuotaBytes

	st := &State{
		engine:     e,
		log:        e.log,
		stdout:     e.config.Stdout,
		globals:    newEnv(nil),
		registry:   make(map[int]Value),
		metatables: make(map[string]*Metatable),
	}
	st.heap = heap.New(cfg, heap.WithLogger(e.log.Named("heap")))
	st.heap.AddRoots(st.markRoots)

	for name, builtin := range e.builtins {
		st.globals.Define(name, builtin)
	}
	for _, lib := range e.libraries {
		if err := st.openLibrary(lib); err != nil {
			st.Close()
			return nil, err
		}
	}
	return st, nil
}

func (st *State) markRoots(mark func(heap.Object)) {
	markValue := func(v Value) {
		if o := v.object(); o != nil {
			mark(o)
		}
	}
	for _, v := range st.stack {
		markValue(v)
	}
	st.globals.each(markValue)
	for _, v := range st.registry {
		markValue(v)
	}
}

// Push places v on top of the stack.
func (st *State) Push(v Value) {
	st.stack = append(st.stack, v)
}

// Pop removes n values from the top of the stack.
func (st *State) Pop(n int) {
	st.SetTop(max(len(st.stack)-n, 0))
}

// Top returns the number of values on the stack.
func (st *State) Top() int { return len(st.stack) }

// SetTop truncates the stack to n values or pads it with nil.
func (st *State) SetTop(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(st.stack) {
		clear(st.stack[n:])
		st.stack = st.stack[:n]
		return
	}
	for len(st.stack) < n {
		st.stack = append(st.stack, NewNil())
	}
}

// Get returns the value at idx: 1..Top() counts from the bottom, -1 is the
// top. Invalid indices yield nil.
func (st *State) Get(idx int) Value {
	pos, ok := st.absIndex(idx)
	if !ok {
		return NewNil()
	}
	return st.stack[pos]
}

func (st *State) absIndex(idx int) (int, bool) {
	switch {
	case idx > 0 && idx <= len(st.stack):
		return idx - 1, true
	case idx < 0 && -idx <= len(st.stack):
		return len(st.stack) + idx, true
	default:
		return 0, false
	}
}

// SetGlobal binds a global variable.
func (st *State) SetGlobal(name string, v Value) {
	st.globals.Assign(name, v)
}

// Global returns the global bound to name, or nil.
func (st *State) Global(name string) Value {
	v, ok := st.globals.Get(name)
	if !ok {
		return NewNil()
	}
	return v
}

// Globals returns a snapshot of every global binding.
func (st *State) Globals() map[string]Value {
	return st.globals.snapshot()
}

// Ref anchors v in the registry so it survives collection while the host
// holds it outside the stack. The returned reference is released by Unref.
func (st *State) Ref(v Value) int {
	st.nextRef++
	st.registry[st.nextRef] = v
	return st.nextRef
}

// RefValue returns the value anchored under ref, or nil.
func (st *State) RefValue(ref int) Value {
	v, ok := st.registry[ref]
	if !ok {
		return NewNil()
	}
	return v
}

func (st *State) Unref(ref int) {
	delete(st.registry, ref)
}

// Collect runs a full collection cycle and returns the bytes reclaimed.
func (st *State) Collect() int {
	return st.heap.Collect()
}

// HeapStats returns a snapshot of the state's heap accounting.
func (st *State) HeapStats() heap.Stats {
	return st.heap.Stats()
}

// Close releases every heap object. The State cannot run scripts afterwards.
func (st *State) Close() {
	if st.closed {
		return
	}
	st.closed = true
	st.stack = nil
	st.registry = nil
	st.globals = newEnv(nil)
	st.heap.Close()
}
