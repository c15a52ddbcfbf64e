package vibes

func isAssignable(expr Expression) bool {
	switch expr.(type) {
	case *Identifier, *MemberExpr, *IndexExpr:
		return true
	default:
		return false
	}
}

const (
	lowestPrec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precRange
	precSum
	precProduct
	precPrefix
	precCall
)

var binaryOperators = []TokenType{
	tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenPercent,
	tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE,
	tokenAnd, tokenOr,
}

// precedences binds tighter as the value grows. Tokens absent from the
// map have lowestPrec and end an expression.
var precedences = map[TokenType]int{
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenRange:    precRange,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenSlash:    precProduct,
	tokenAsterisk: precProduct,
	tokenPercent:  precProduct,
	tokenLParen:   precCall,
	tokenDot:      precCall,
	tokenLBracket: precCall,
}
