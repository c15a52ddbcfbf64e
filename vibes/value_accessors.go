package vibes

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

// IsNumber reports whether v is an int or a float.
func (v Value) IsNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

func (v Value) Range() Range {
	if v.kind != KindRange {
		return Range{}
	}
	return v.data.(Range)
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) Table() *Table {
	if v.kind != KindTable {
		return nil
	}
	return v.data.(*Table)
}

func (v Value) Userdata() *Userdata {
	if v.kind != KindUserdata {
		return nil
	}
	return v.data.(*Userdata)
}

// IsVector reports whether v holds a native vector.
func (v Value) IsVector() bool { return v.kind == KindVector }

// AsVector returns a copy of the components of a native vector.
func (v Value) AsVector() ([4]float32, bool) {
	if v.kind != KindVector {
		return [4]float32{}, false
	}
	return v.data.(*Vector).c, true
}
