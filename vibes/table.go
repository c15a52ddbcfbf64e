package vibes

import (
	"fmt"

	"github.com/mgomes/vecscript/heap"
)

const (
	estimatedTableBytes     = 64
	estimatedTableSlotBytes = 24
)

// Table is the collectable container behind array and hash literals. It has
// a 1-based array part and a string-keyed hash part that remembers
// insertion order.
type Table struct {
	heap.Header
	array []Value
	hash  map[string]Value
	keys  []string
}

func (t *Table) Traverse(mark func(heap.Object)) {
	for _, v := range t.array {
		if o := v.object(); o != nil {
			mark(o)
		}
	}
	for _, v := range t.hash {
		if o := v.object(); o != nil {
			mark(o)
		}
	}
}

func (t *Table) Release() {
	t.array = nil
	t.hash = nil
	t.keys = nil
}

// Len returns the size of the array part.
func (t *Table) Len() int { return len(t.array) }

// Field returns the hash entry for name, or nil.
func (t *Table) Field(name string) Value {
	if v, ok := t.hash[name]; ok {
		return v
	}
	return NewNil()
}

// Keys returns the hash part keys in insertion order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

func (t *Table) get(key Value) (Value, error) {
	switch key.kind {
	case KindString:
		return t.Field(key.data.(string)), nil
	case KindInt, KindFloat:
		i, ok := integralIndex(key)
		if !ok || i < 1 || i > int64(len(t.array)) {
			return NewNil(), nil
		}
		return t.array[i-1], nil
	default:
		return NewNil(), typeErrorf("cannot index table with %s", key.Kind())
	}
}

// NewTable allocates an empty table.
func (st *State) NewTable() (*Table, error) {
	t := &Table{}
	if err := st.heap.Alloc(t, heap.TagTable, estimatedTableBytes); err != nil {
		return nil, err
	}
	return t, nil
}

// PushTable allocates an empty table and pushes it.
func (st *State) PushTable() (*Table, error) {
	t, err := st.NewTable()
	if err != nil {
		return nil, err
	}
	st.Push(newTableValue(t))
	return t, nil
}

// SetField stores v under name in the hash part.
func (st *State) SetField(t *Table, name string, v Value) {
	if t.hash == nil {
		t.hash = make(map[string]Value)
	}
	if _, exists := t.hash[name]; !exists {
		t.keys = append(t.keys, name)
		st.heap.Resize(t, estimatedTableSlotBytes)
	}
	t.hash[name] = v
	st.barrier(t, v)
}

// Append adds v to the end of the array part.
func (st *State) Append(t *Table, v Value) {
	t.array = append(t.array, v)
	st.heap.Resize(t, estimatedTableSlotBytes)
	st.barrier(t, v)
}

func (st *State) setTable(t *Table, key Value, v Value) error {
	switch key.kind {
	case KindString:
		st.SetField(t, key.data.(string), v)
		return nil
	case KindInt, KindFloat:
		i, ok := integralIndex(key)
		switch {
		case ok && i >= 1 && i <= int64(len(t.array)):
			t.array[i-1] = v
			st.barrier(t, v)
			return nil
		case ok && i == int64(len(t.array))+1:
			st.Append(t, v)
			return nil
		default:
			return fmt.Errorf("table index %s out of bounds (length %d)", key.String(), len(t.array))
		}
	default:
		return typeErrorf("cannot index table with %s", key.Kind())
	}
}

func (st *State) barrier(parent heap.Object, v Value) {
	if v.object() != nil {
		st.heap.BarrierBack(parent)
	}
}
