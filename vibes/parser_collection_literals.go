package vibes

import "fmt"

func (p *parser) parseArrayLiteral() Expression {
	pos := p.curToken.Pos
	elements := []Expression{}

	if p.peekToken.Type == tokenRBracket {
		p.nextToken()
		return &ArrayLiteral{Elements: elements, position: pos}
	}

	p.nextToken()
	if elem := p.parseExpression(lowestPrec); elem != nil {
		elements = append(elements, elem)
	}

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if elem := p.parseExpression(lowestPrec); elem != nil {
			elements = append(elements, elem)
		}
	}

	if !p.expectPeek(tokenRBracket) {
		return nil
	}

	return &ArrayLiteral{Elements: elements, position: pos}
}

func (p *parser) parseHashLiteral() Expression {
	pos := p.curToken.Pos
	pairs := []HashPair{}

	if p.peekToken.Type == tokenRBrace {
		p.nextToken()
		return &HashLiteral{Pairs: pairs, position: pos}
	}

	p.nextToken()
	if pair, ok := p.parseHashPair(); ok {
		pairs = append(pairs, pair)
	}

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if pair, ok := p.parseHashPair(); ok {
			pairs = append(pairs, pair)
		}
	}

	if !p.expectPeek(tokenRBrace) {
		return nil
	}

	return &HashLiteral{Pairs: pairs, position: pos}
}

func (p *parser) parseHashPair() (HashPair, bool) {
	if p.curToken.Type != tokenIdent || p.peekToken.Type != tokenColon {
		p.addParseError(p.curToken.Pos, "invalid hash pair: expected key like name:")
		return HashPair{}, false
	}

	key := p.curToken.Literal
	p.nextToken()
	p.nextToken()
	if p.curToken.Type == tokenComma || p.curToken.Type == tokenRBrace {
		p.addParseError(p.curToken.Pos, fmt.Sprintf("missing value for hash key %s", key))
		return HashPair{}, false
	}

	value := p.parseExpression(lowestPrec)
	if value == nil {
		return HashPair{}, false
	}
	return HashPair{Key: key, Value: value}, true
}
