package vibes

func (exec *Execution) evalRangeExpr(expr *RangeExpr) (Value, error) {
	startVal, err := exec.evalExpression(expr.Start)
	if err != nil {
		return NewNil(), err
	}
	endVal, err := exec.evalExpression(expr.End)
	if err != nil {
		return NewNil(), err
	}
	start, ok := integralIndex(startVal)
	if !ok {
		return NewNil(), exec.typeErrorAt(expr.Start.Pos(), "range bounds must be integers, got %s", startVal.Kind())
	}
	end, ok := integralIndex(endVal)
	if !ok {
		return NewNil(), exec.typeErrorAt(expr.End.Pos(), "range bounds must be integers, got %s", endVal.Kind())
	}
	return NewRange(Range{Start: start, End: end}), nil
}

func (exec *Execution) evalIfStatement(stmt *IfStmt) (Value, error) {
	cond, err := exec.evalExpression(stmt.Condition)
	if err != nil {
		return NewNil(), err
	}
	if cond.Truthy() {
		return exec.evalStatements(stmt.Consequent)
	}
	for _, clause := range stmt.ElseIf {
		cond, err := exec.evalExpression(clause.Condition)
		if err != nil {
			return NewNil(), err
		}
		if cond.Truthy() {
			return exec.evalStatements(clause.Consequent)
		}
	}
	if len(stmt.Alternate) > 0 {
		return exec.evalStatements(stmt.Alternate)
	}
	return NewNil(), nil
}

// evalForStatement iterates a range (ascending or descending, inclusive)
// or the array part of a table and yields the body's last value.
func (exec *Execution) evalForStatement(stmt *ForStmt) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	iterable, err := exec.evalExpression(stmt.Iterable)
	if err != nil {
		return NewNil(), err
	}
	st.Push(iterable)
	st.Push(NewNil())
	lastSlot := st.Top() - 1

	body := func(item Value) error {
		st.globals.Assign(stmt.Iterator, item)
		val, err := exec.evalStatements(stmt.Body)
		if err != nil {
			return err
		}
		st.stack[lastSlot] = val
		return nil
	}

	switch iterable.Kind() {
	case KindTable:
		t := iterable.Table()
		for i := 0; i < t.Len(); i++ {
			if err := body(t.array[i]); err != nil {
				return NewNil(), err
			}
		}
	case KindRange:
		r := iterable.Range()
		step := int64(1)
		if r.Start > r.End {
			step = -1
		}
		for i := r.Start; ; i += step {
			if err := body(NewInt(i)); err != nil {
				return NewNil(), err
			}
			if i == r.End {
				break
			}
		}
	default:
		return NewNil(), exec.typeErrorAt(stmt.Pos(), "cannot iterate over %s", iterable.typeName())
	}

	return st.stack[lastSlot], nil
}
