package vibes

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		if p.peekStartsStatement() {
			return left
		}
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// peekStartsStatement reports whether a bracket or paren on a new line
// opens the next statement rather than indexing or calling the current one.
func (p *parser) peekStartsStatement() bool {
	switch p.peekToken.Type {
	case tokenLBracket, tokenLParen:
		return p.peekToken.Pos.Line > p.curToken.Pos.Line
	default:
		return false
	}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseRangeExpression(left Expression) Expression {
	pos := p.curToken.Pos
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &RangeExpr{Start: left, End: right, position: pos}
}

func (p *parser) parseCallExpression(function Expression) Expression {
	expr := &CallExpr{Callee: function, position: function.Pos()}
	args := []Expression{}

	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		expr.Args = args
		return expr
	}

	p.nextToken()
	if arg := p.parseExpression(lowestPrec); arg != nil {
		args = append(args, arg)
	}

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if arg := p.parseExpression(lowestPrec); arg != nil {
			args = append(args, arg)
		}
	}

	if !p.expectPeek(tokenRParen) {
		return nil
	}

	expr.Args = args
	return expr
}

func (p *parser) parseMemberExpression(object Expression) Expression {
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	return &MemberExpr{Object: object, Property: p.curToken.Literal, position: object.Pos()}
}

func (p *parser) parseIndexExpression(object Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	index := p.parseExpression(lowestPrec)
	if index == nil {
		return nil
	}
	if !p.expectPeek(tokenRBracket) {
		return nil
	}
	return &IndexExpr{Object: object, Index: index, position: pos}
}
