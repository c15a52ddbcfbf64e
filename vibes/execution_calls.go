package vibes

import "slices"

func (exec *Execution) evalCallExpr(e *CallExpr) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	callee, err := exec.evalExpression(e.Callee)
	if err != nil {
		return NewNil(), err
	}
	st.Push(callee)
	for _, arg := range e.Args {
		val, err := exec.evalExpression(arg)
		if err != nil {
			return NewNil(), err
		}
		st.Push(val)
	}

	if callee.Kind() != KindBuiltin {
		return NewNil(), exec.typeErrorAt(e.Pos(), "attempt to call %s value", callee.Kind())
	}
	b := callee.Builtin()
	args := slices.Clone(st.stack[base+1:])

	exec.pushFrame(b.Name, e.Pos())
	defer exec.popFrame()
	result, err := b.Fn(st, args)
	if err != nil {
		return NewNil(), exec.wrapError(err, e.Pos())
	}
	return result, nil
}
