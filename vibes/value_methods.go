package vibes

import (
	"fmt"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRange:
		return "range"
	case KindBuiltin:
		return "builtin"
	case KindTable:
		return "table"
	case KindUserdata:
		return "userdata"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// typeName is the kind name, or the metatable name for userdata that has
// one, so boxed vectors read as vec.box in messages.
func (v Value) typeName() string {
	if u := v.Userdata(); u != nil && u.meta != nil {
		return u.meta.Name
	}
	return v.kind.String()
}

func (v Value) String() string {
	return formatValue(v, nil)
}

func formatValue(v Value, seen map[*Table]bool) string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindNil:
		return ""
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.data.(int64))
	case KindFloat:
		return fmt.Sprintf("%g", v.data.(float64))
	case KindRange:
		r := v.data.(Range)
		return fmt.Sprintf("%d..%d", r.Start, r.End)
	case KindBuiltin:
		return fmt.Sprintf("<builtin %s>", v.data.(*Builtin).Name)
	case KindVector:
		return formatVector(v.data.(*Vector).c)
	case KindUserdata:
		u := v.data.(*Userdata)
		if u.meta != nil {
			if fn := u.meta.op(CapStringify); fn != nil {
				if s, err := fn(nil, []Value{v}); err == nil {
					return s.String()
				}
			}
			return fmt.Sprintf("<%s>", u.meta.Name)
		}
		return "<userdata>"
	case KindTable:
		t := v.data.(*Table)
		if seen[t] {
			return "[...]"
		}
		if seen == nil {
			seen = make(map[*Table]bool)
		}
		seen[t] = true
		defer delete(seen, t)

		parts := make([]string, 0, len(t.array)+len(t.keys))
		for _, elem := range t.array {
			parts = append(parts, formatValue(elem, seen))
		}
		if len(t.keys) == 0 {
			return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
		}
		for _, k := range t.keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, formatValue(t.hash[k], seen)))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

func formatVector(c [4]float32) string {
	return fmt.Sprintf("vec(%f, %f, %f, %f)", c[0], c[1], c[2], c[3])
}

func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	default:
		return true
	}
}

// Equal compares inline kinds by value and heap kinds by identity.
func (v Value) Equal(other Value) bool {
	if v.IsNumber() && other.IsNumber() && v.kind != other.kind {
		return v.Float() == other.Float()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindRange:
		return v.data.(Range) == other.data.(Range)
	default:
		return v.data == other.data
	}
}
