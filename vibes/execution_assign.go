package vibes

// assign evaluates an assignment and yields the stored value.
func (exec *Execution) assign(stmt *AssignStmt) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	value, err := exec.evalExpression(stmt.Value)
	if err != nil {
		return NewNil(), err
	}
	st.Push(value)

	switch t := stmt.Target.(type) {
	case *Identifier:
		st.globals.Assign(t.Name, value)
		return value, nil
	case *MemberExpr:
		obj, err := exec.evalExpression(t.Object)
		if err != nil {
			return NewNil(), err
		}
		if obj.Kind() != KindTable {
			return NewNil(), exec.typeErrorAt(t.Pos(), "cannot assign member %s of %s", t.Property, obj.Kind())
		}
		st.SetField(obj.Table(), t.Property, value)
		return value, nil
	case *IndexExpr:
		obj, idx, err := exec.evalPair(t.Object, t.Index)
		if err != nil {
			return NewNil(), err
		}
		if err := st.setIndex(obj, idx, value); err != nil {
			return NewNil(), exec.wrapError(err, t.Pos())
		}
		return value, nil
	default:
		return NewNil(), exec.errorAt(stmt.Pos(), "invalid assignment target")
	}
}
