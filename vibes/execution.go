package vibes

import "context"

// Script is a parsed program. It holds no heap values and may be run in
// any State created by the same Engine.
type Script struct {
	engine  *Engine
	program *Program
	source  string
}

// Source returns the script text.
func (s *Script) Source() string { return s.source }

type callFrame struct {
	Function string
	Pos      Position
}

// Execution evaluates one script run. Every intermediate heap value it
// produces sits on the State stack until the expression that needs it is
// finished, so a collection triggered by any allocation sees it.
type Execution struct {
	state     *State
	script    *Script
	ctx       context.Context
	quota     int
	steps     int
	callStack []callFrame
}

func (exec *Execution) evalStatements(stmts []Statement) (Value, error) {
	result := NewNil()
	for _, stmt := range stmts {
		val, err := exec.evalStatement(stmt)
		if err != nil {
			return NewNil(), err
		}
		result = val
	}
	return result, nil
}

func (exec *Execution) evalStatement(stmt Statement) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), err
	}
	switch s := stmt.(type) {
	case *ExprStmt:
		return exec.evalExpression(s.Expr)
	case *AssignStmt:
		return exec.assign(s)
	case *IfStmt:
		return exec.evalIfStatement(s)
	case *ForStmt:
		return exec.evalForStatement(s)
	default:
		return NewNil(), exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), err
	}
	switch e := expr.(type) {
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NilLiteral:
		return NewNil(), nil
	case *Identifier:
		val, ok := exec.state.globals.Get(e.Name)
		if !ok {
			return NewNil(), exec.errorAt(e.Pos(), "undefined variable %s", e.Name)
		}
		return val, nil
	case *ArrayLiteral:
		return exec.evalArrayLiteral(e)
	case *HashLiteral:
		return exec.evalHashLiteral(e)
	case *UnaryExpr:
		return exec.evalUnaryExpr(e)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e)
	case *RangeExpr:
		return exec.evalRangeExpr(e)
	case *MemberExpr:
		return exec.evalMemberExpr(e)
	case *IndexExpr:
		return exec.evalIndexExpr(e)
	case *CallExpr:
		return exec.evalCallExpr(e)
	default:
		return NewNil(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}

func (exec *Execution) evalArrayLiteral(e *ArrayLiteral) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	t, err := st.PushTable()
	if err != nil {
		return NewNil(), exec.wrapError(err, e.Pos())
	}
	for _, el := range e.Elements {
		val, err := exec.evalExpression(el)
		if err != nil {
			return NewNil(), err
		}
		st.Append(t, val)
	}
	return newTableValue(t), nil
}

func (exec *Execution) evalHashLiteral(e *HashLiteral) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	t, err := st.PushTable()
	if err != nil {
		return NewNil(), exec.wrapError(err, e.Pos())
	}
	for _, pair := range e.Pairs {
		val, err := exec.evalExpression(pair.Value)
		if err != nil {
			return NewNil(), err
		}
		st.SetField(t, pair.Key, val)
	}
	return newTableValue(t), nil
}

// evalPair evaluates two operands left to right and keeps both rooted
// until the caller resets the stack.
func (exec *Execution) evalPair(left, right Expression) (Value, Value, error) {
	l, err := exec.evalExpression(left)
	if err != nil {
		return NewNil(), NewNil(), err
	}
	exec.state.Push(l)
	r, err := exec.evalExpression(right)
	if err != nil {
		return NewNil(), NewNil(), err
	}
	exec.state.Push(r)
	return l, r, nil
}

func (exec *Execution) evalMemberExpr(e *MemberExpr) (Value, error) {
	obj, err := exec.evalExpression(e.Object)
	if err != nil {
		return NewNil(), err
	}
	if obj.Kind() != KindTable {
		return NewNil(), exec.typeErrorAt(e.Pos(), "cannot access member %s of %s", e.Property, obj.typeName())
	}
	return obj.Table().Field(e.Property), nil
}

func (exec *Execution) evalIndexExpr(e *IndexExpr) (Value, error) {
	st := exec.state
	base := st.Top()
	defer st.SetTop(base)

	obj, idx, err := exec.evalPair(e.Object, e.Index)
	if err != nil {
		return NewNil(), err
	}
	val, err := st.index(obj, idx)
	if err != nil {
		return NewNil(), exec.wrapError(err, e.Pos())
	}
	return val, nil
}
