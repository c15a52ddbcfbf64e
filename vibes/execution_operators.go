package vibes

var binaryCapabilities = map[TokenType]Capability{
	tokenPlus:     CapAdd,
	tokenMinus:    CapSub,
	tokenAsterisk: CapMul,
	tokenSlash:    CapDiv,
}

func (exec *Execution) evalUnaryExpr(e *UnaryExpr) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	right, err := exec.evalExpression(e.Right)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator {
	case tokenMinus:
		st.Push(right)
		val, err := st.negate(right)
		if err != nil {
			return NewNil(), exec.wrapError(err, e.Pos())
		}
		return val, nil
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), exec.errorAt(e.Pos(), "unsupported unary operator")
	}
}

func (exec *Execution) evalBinaryExpr(expr *BinaryExpr) (Value, error) {
	switch expr.Operator {
	case tokenAnd, tokenOr:
		return exec.evalLogicalExpr(expr)
	}

	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	left, right, err := exec.evalPair(expr.Left, expr.Right)
	if err != nil {
		return NewNil(), err
	}

	var result Value
	switch expr.Operator {
	case tokenPlus, tokenMinus, tokenAsterisk, tokenSlash:
		result, err = st.arith(binaryCapabilities[expr.Operator], left, right)
	case tokenPercent:
		result, err = moduloValues(left, right)
	case tokenEQ:
		return NewBool(left.Equal(right)), nil
	case tokenNotEQ:
		return NewBool(!left.Equal(right)), nil
	case tokenLT, tokenLTE, tokenGT, tokenGTE:
		var c int
		c, err = compareValues(left, right)
		if err == nil {
			result = NewBool(comparisonHolds(expr.Operator, c))
		}
	default:
		return NewNil(), exec.errorAt(expr.Pos(), "unsupported operator %s", expr.Operator)
	}
	if err != nil {
		return NewNil(), exec.wrapError(err, expr.Pos())
	}
	return result, nil
}

func comparisonHolds(op TokenType, c int) bool {
	switch op {
	case tokenLT:
		return c < 0
	case tokenLTE:
		return c <= 0
	case tokenGT:
		return c > 0
	default:
		return c >= 0
	}
}

// evalLogicalExpr short-circuits && and || and yields a bool.
func (exec *Execution) evalLogicalExpr(expr *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(expr.Left)
	if err != nil {
		return NewNil(), err
	}
	if expr.Operator == tokenAnd && !left.Truthy() {
		return NewBool(false), nil
	}
	if expr.Operator == tokenOr && left.Truthy() {
		return NewBool(true), nil
	}
	right, err := exec.evalExpression(expr.Right)
	if err != nil {
		return NewNil(), err
	}
	return NewBool(right.Truthy()), nil
}

// index reads obj[key].
func (st *State) index(obj, key Value) (Value, error) {
	if obj.Kind() == KindTable {
		return obj.Table().get(key)
	}
	if fn := obj.capabilities().op(CapIndex); fn != nil {
		return fn(st, []Value{obj, key})
	}
	return NewNil(), typeErrorf("cannot index %s", obj.typeName())
}

// setIndex performs obj[key] = v.
func (st *State) setIndex(obj, key, v Value) error {
	if obj.Kind() == KindTable {
		return st.setTable(obj.Table(), key, v)
	}
	if obj.Kind() == KindVector {
		return typeErrorf("vector values are immutable")
	}
	if fn := obj.capabilities().op(CapIndexAssign); fn != nil {
		_, err := fn(st, []Value{obj, key, v})
		return err
	}
	return typeErrorf("cannot assign index of %s", obj.typeName())
}
