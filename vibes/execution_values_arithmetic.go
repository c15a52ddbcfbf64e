package vibes

import (
	"fmt"
	"math"
)

var operatorNames = map[Capability]string{
	CapAdd: "addition",
	CapSub: "subtraction",
	CapMul: "multiplication",
	CapDiv: "division",
}

// arith applies a binary arithmetic operator. Numbers are handled
// directly; otherwise the left operand's capability table is consulted,
// then the right operand's.
func (st *State) arith(op Capability, left, right Value) (Value, error) {
	if left.IsNumber() && right.IsNumber() {
		return arithNumbers(op, left, right)
	}
	if fn := left.capabilities().op(op); fn != nil {
		return fn(st, []Value{left, right})
	}
	if fn := right.capabilities().op(op); fn != nil {
		return fn(st, []Value{left, right})
	}
	if op == CapAdd && (left.Kind() == KindString || right.Kind() == KindString) {
		return NewString(left.String() + right.String()), nil
	}
	return NewNil(), typeErrorf("unsupported %s operands (%s and %s)", operatorNames[op], left.typeName(), right.typeName())
}

func arithNumbers(op Capability, left, right Value) (Value, error) {
	ints := left.Kind() == KindInt && right.Kind() == KindInt
	switch op {
	case CapAdd:
		if ints {
			return NewInt(left.Int() + right.Int()), nil
		}
		return NewFloat(left.Float() + right.Float()), nil
	case CapSub:
		if ints {
			return NewInt(left.Int() - right.Int()), nil
		}
		return NewFloat(left.Float() - right.Float()), nil
	case CapMul:
		if ints {
			return NewInt(left.Int() * right.Int()), nil
		}
		return NewFloat(left.Float() * right.Float()), nil
	case CapDiv:
		if right.Float() == 0 {
			return NewNil(), divisionByZeroError()
		}
		return NewFloat(left.Float() / right.Float()), nil
	default:
		return NewNil(), fmt.Errorf("unsupported numeric operator %s", op)
	}
}

func moduloValues(left, right Value) (Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return NewNil(), typeErrorf("unsupported modulo operands (%s and %s)", left.typeName(), right.typeName())
	}
	if right.Float() == 0 {
		return NewNil(), &kindError{kind: ErrDivisionByZero, msg: "modulo by zero"}
	}
	if left.Kind() == KindInt && right.Kind() == KindInt {
		return NewInt(left.Int() % right.Int()), nil
	}
	return NewFloat(math.Mod(left.Float(), right.Float())), nil
}

// negate applies unary minus.
func (st *State) negate(v Value) (Value, error) {
	switch v.Kind() {
	case KindInt:
		return NewInt(-v.Int()), nil
	case KindFloat:
		return NewFloat(-v.Float()), nil
	}
	if fn := v.capabilities().op(CapNegate); fn != nil {
		return fn(st, []Value{v})
	}
	return NewNil(), typeErrorf("unsupported unary - operand (%s)", v.typeName())
}

func compareValues(left, right Value) (int, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return cmpOrdered(left.Int(), right.Int()), nil
	case left.IsNumber() && right.IsNumber():
		return cmpOrdered(left.Float(), right.Float()), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return cmpOrdered(left.data.(string), right.data.(string)), nil
	default:
		return 0, typeErrorf("cannot compare %s with %s", left.typeName(), right.typeName())
	}
}

func cmpOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
