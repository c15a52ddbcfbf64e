package vibes

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenIf:
		return p.parseIfStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenIdent:
		if p.curToken.Literal == "assert" && p.peekToken.Type != tokenLParen {
			return p.parseAssertStatement()
		}
		return p.parseExpressionOrAssignStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *parser) parseExpressionOrAssignStatement() Statement {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}

	if p.peekToken.Type == tokenAssign {
		if !isAssignable(expr) {
			p.addParseError(p.peekToken.Pos, "invalid assignment target")
			return nil
		}
		pos := expr.Pos()
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(lowestPrec)
		if value == nil {
			return nil
		}
		return &AssignStmt{Target: expr, Value: value, position: pos}
	}

	return &ExprStmt{Expr: expr, position: expr.Pos()}
}

func (p *parser) parseAssertStatement() Statement {
	pos := p.curToken.Pos
	callee := &Identifier{Name: p.curToken.Literal, position: pos}
	args := []Expression{}
	p.nextToken()
	if p.curToken.Type == tokenEOF || p.curToken.Type == tokenEnd {
		return &ExprStmt{Expr: callee, position: pos}
	}
	first := p.parseExpression(lowestPrec)
	if first != nil {
		args = append(args, first)
		for p.peekToken.Type == tokenComma {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseExpression(lowestPrec))
		}
	}
	call := &CallExpr{Callee: callee, Args: args, position: pos}
	return &ExprStmt{Expr: call, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}

	p.nextToken()
	consequent := p.parseBlock(tokenEnd, tokenElse, tokenElsif)

	var elseifClauses []*IfStmt
	for p.curToken.Type == tokenElsif {
		p.nextToken()
		cond := p.parseExpression(lowestPrec)
		if cond == nil {
			return nil
		}
		p.nextToken()
		body := p.parseBlock(tokenEnd, tokenElse, tokenElsif)
		clause := &IfStmt{Condition: cond, Consequent: body, position: cond.Pos()}
		elseifClauses = append(elseifClauses, clause)
	}

	var alternate []Statement
	if p.curToken.Type == tokenElse {
		p.nextToken()
		alternate = p.parseBlock(tokenEnd)
	}

	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "'end'")
	}

	return &IfStmt{Condition: condition, Consequent: consequent, ElseIf: elseifClauses, Alternate: alternate, position: pos}
}

func (p *parser) parseForStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	iterator := p.curToken.Literal

	if !p.expectPeek(tokenIn) {
		return nil
	}

	p.nextToken()
	iterable := p.parseExpression(lowestPrec)
	if iterable == nil {
		return nil
	}

	p.nextToken()
	body := p.parseBlock(tokenEnd)

	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "'end'")
	}

	return &ForStmt{Iterator: iterator, Iterable: iterable, Body: body, position: pos}
}

func (p *parser) parseBlock(stop ...TokenType) []Statement {
	stmts := []Statement{}
	stopSet := make(map[TokenType]struct{}, len(stop))
	for _, tt := range stop {
		stopSet[tt] = struct{}{}
	}

	for {
		if _, ok := stopSet[p.curToken.Type]; ok || p.curToken.Type == tokenEOF {
			return stmts
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
}
