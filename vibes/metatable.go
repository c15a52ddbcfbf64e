package vibes

import "fmt"

// Capability names one operation a value kind can supply to the evaluator.
type Capability int

const (
	CapAdd Capability = iota
	CapSub
	CapMul
	CapDiv
	CapNegate
	CapIndex
	CapIndexAssign
	CapStringify

	capabilityCount
)

func (c Capability) String() string {
	switch c {
	case CapAdd:
		return "add"
	case CapSub:
		return "sub"
	case CapMul:
		return "mul"
	case CapDiv:
		return "div"
	case CapNegate:
		return "unm"
	case CapIndex:
		return "index"
	case CapIndexAssign:
		return "newindex"
	case CapStringify:
		return "tostring"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// Metatable is the fixed capability table attached to userdata. Binary
// handlers receive both operands in source order, unary handlers one
// operand, CapIndex (object, index) and CapIndexAssign (object, index,
// value).
type Metatable struct {
	Name string
	ops  [capabilityCount]BuiltinFunc
}

// Set installs fn as the handler for c.
func (m *Metatable) Set(c Capability, fn BuiltinFunc) {
	m.ops[c] = fn
}

// Has reports whether the metatable supplies c.
func (m *Metatable) Has(c Capability) bool {
	return m.op(c) != nil
}

func (m *Metatable) op(c Capability) BuiltinFunc {
	if m == nil || c < 0 || c >= capabilityCount {
		return nil
	}
	return m.ops[c]
}

// NewMetatable registers an empty metatable under name. It returns the
// existing table and false when name is already registered.
func (st *State) NewMetatable(name string) (*Metatable, bool) {
	if mt, ok := st.metatables[name]; ok {
		return mt, false
	}
	mt := &Metatable{Name: name}
	st.metatables[name] = mt
	return mt, true
}

// Metatable returns the metatable registered under name, or nil.
func (st *State) Metatable(name string) *Metatable {
	return st.metatables[name]
}

// CheckUserdata returns args[i-1] when it is userdata carrying the
// metatable registered under name.
func (st *State) CheckUserdata(args []Value, i int, fn string, name string) (*Userdata, error) {
	v := argAt(args, i)
	if u := v.Userdata(); u != nil && u.meta != nil && u.meta == st.metatables[name] {
		return u, nil
	}
	return nil, argTypeError(fn, i, name, v)
}

// capabilities returns the capability table governing v, or nil.
func (v Value) capabilities() *Metatable {
	switch v.kind {
	case KindVector:
		return nativeVectorOps
	case KindUserdata:
		return v.data.(*Userdata).meta
	default:
		return nil
	}
}

func argAt(args []Value, i int) Value {
	if i < 1 || i > len(args) {
		return NewNil()
	}
	return args[i-1]
}
