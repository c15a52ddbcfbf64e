package vibes

func NewNil() Value            { return Value{kind: KindNil} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewRange(r Range) Value   { return Value{kind: KindRange, data: r} }

func NewBuiltin(name string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn}}
}

func newTableValue(t *Table) Value       { return Value{kind: KindTable, data: t} }
func newUserdataValue(u *Userdata) Value { return Value{kind: KindUserdata, data: u} }
func newVectorValue(v *Vector) Value     { return Value{kind: KindVector, data: v} }
