package vibes

import "maps"

// Env holds script variables. A State's global Env is a collector root.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return true
	}
	if e.parent != nil {
		if e.parent.Assign(name, val) {
			return true
		}
	}
	e.values[name] = val
	return true
}

func (e *Env) snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	maps.Copy(out, e.values)
	return out
}

func (e *Env) each(fn func(Value)) {
	for env := e; env != nil; env = env.parent {
		for _, v := range env.values {
			fn(v)
		}
	}
}
