package parser

import (
	"strconv"

	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/token"
)

// Precedence levels for the binary-operator climb, lowest to highest.
const (
	lowest     = iota
	precOr     // or
	precAnd    // and
	precCmp    // < > <= >= == ~=
	precConcat // ..
	precAdd    // + -
	precMul    // * / %
	precUnary  // not # - ~ (prefix)
)

var binPrec = map[token.Type]int{
	token.OR:      precOr,
	token.AND:     precAnd,
	token.LT:      precCmp,
	token.GT:      precCmp,
	token.LE:      precCmp,
	token.GE:      precCmp,
	token.EQ:      precCmp,
	token.NEQ:     precCmp,
	token.CONCAT:  precConcat,
	token.PLUS:    precAdd,
	token.MINUS:   precAdd,
	token.STAR:    precMul,
	token.SLASH:   precMul,
	token.PERCENT: precMul,
}

var binOp = map[token.Type]string{
	token.OR:      "or",
	token.AND:     "and",
	token.LT:      "<",
	token.GT:      ">",
	token.LE:      "<=",
	token.GE:      ">=",
	token.EQ:      "==",
	token.NEQ:     "~=",
	token.CONCAT:  "..",
	token.PLUS:    "+",
	token.MINUS:   "-",
	token.STAR:    "*",
	token.SLASH:   "/",
	token.PERCENT: "%",
}

// parseExpression is the Pratt-style precedence climb: it parses a unary
// (or primary-suffixed) left operand, then keeps absorbing binary operators
// whose precedence exceeds prec.
func (p *Parser) parseExpression(prec int) ast.Expression {
	left := p.parseUnary()

	for {
		opPrec, ok := binPrec[p.cur.Type]
		if !ok || opPrec <= prec {
			break
		}
		tok := p.cur
		op := binOp[tok.Type]
		p.advance()
		right := p.parseExpression(opPrec)
		left = &ast.BinaryExpression{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case token.NOT:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpression{Token: tok, Op: "not", Operand: p.parseExpression(precUnary)}
	case token.HASH:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpression{Token: tok, Op: "#", Operand: p.parseExpression(precUnary)}
	case token.MINUS:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpression{Token: tok, Op: "-", Operand: p.parseExpression(precUnary)}
	case token.TILDE:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpression{Token: tok, Op: "~", Operand: p.parseExpression(precUnary)}
	default:
		return p.parseSuffixed()
	}
}

// parseSuffixed parses a primary expression, then a chain of `.field`,
// `[index]`, `:method(args)` and `(args)` postfixes.
func (p *Parser) parseSuffixed() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur.Type {
		case token.DOT:
			tok := p.cur
			p.advance()
			name := p.parseIdentifier()
			expr = &ast.FieldAccessExpression{Token: tok, Target: expr, Name: name}
		case token.LBRACKET:
			tok := p.cur
			p.advance()
			idx := p.parseExpression(lowest)
			p.expect(token.RBRACKET)
			expr = &ast.IndexExpression{Token: tok, Target: expr, Index: idx}
		case token.COLON:
			tok := p.cur
			p.advance()
			method := p.parseIdentifier()
			args := p.parseCallArgs()
			expr = &ast.MethodCallExpression{Token: tok, Receiver: expr, Method: method, Args: args}
		case token.LPAREN:
			tok := p.cur
			args := p.parseCallArgs()
			expr = &ast.CallExpression{Token: tok, Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	if p.cur.Type != token.RPAREN {
		args = p.parseExpressionList()
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case token.NIL:
		tok := p.cur
		p.advance()
		return &ast.NilLiteral{Token: tok}
	case token.TRUE:
		tok := p.cur
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case token.FALSE:
		tok := p.cur
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case token.SELF:
		tok := p.cur
		p.advance()
		return &ast.SelfExpression{Token: tok}
	case token.DOTDOTDOT:
		tok := p.cur
		p.advance()
		return &ast.VarargsExpression{Token: tok}
	case token.NUMBER_INT:
		tok := p.cur
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.NumberLiteral{Token: tok, IntVal: v}
	case token.NUMBER_FLOAT:
		tok := p.cur
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.NumberLiteral{Token: tok, IsFloat: true, FloatVal: v}
	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.IDENT, token.IDENT_UPPER:
		return p.parseIdentifier()
	case token.REQUIRE:
		tok := p.cur
		p.advance()
		return &ast.Identifier{Token: tok, Value: "require"}
	case token.FUNCTION:
		p.advance()
		return p.parseFunctionLiteralBody()
	case token.LBRACE:
		return p.parseTableConstructor()
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression(lowest)
		p.expect(token.RPAREN)
		return expr
	default:
		tok := p.cur
		p.errorf(tok, "unexpected %q in expression", tok.Lexeme)
		p.advance()
		return &ast.NilLiteral{Token: tok}
	}
}

func (p *Parser) parseTableConstructor() ast.Expression {
	tok := p.cur
	p.advance()
	tc := &ast.TableConstructor{Token: tok}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		tc.Fields = append(tc.Fields, p.parseTableField())
		if p.cur.Type == token.COMMA || p.cur.Type == token.SEMICOLON {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return tc
}

func (p *Parser) parseTableField() *ast.TableField {
	if p.cur.Type == token.LBRACKET {
		p.advance()
		key := p.parseExpression(lowest)
		p.expect(token.RBRACKET)
		p.expect(token.ASSIGN)
		value := p.parseExpression(lowest)
		return &ast.TableField{Key: key, Value: value}
	}
	if (p.cur.Type == token.IDENT || p.cur.Type == token.IDENT_UPPER) && p.peek.Type == token.ASSIGN {
		name := p.parseIdentifier()
		p.advance() // consume "="
		value := p.parseExpression(lowest)
		return &ast.TableField{Name: name, Value: value}
	}
	return &ast.TableField{Value: p.parseExpression(lowest)}
}

// parseFunctionLiteralBody parses everything after the leading `function`
// keyword has already been consumed: optional generic params, the parameter
// list, optional return type, the body and the closing `end`.
func (p *Parser) parseFunctionLiteralBody() *ast.FunctionLiteral {
	tok := p.cur
	fn := &ast.FunctionLiteral{Token: tok}
	fn.GenericParams = p.parseGenericParams()

	p.expect(token.LPAREN)
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		if p.cur.Type == token.DOTDOTDOT {
			p.advance()
			fn.Variadic = true
			if p.cur.Type == token.COLON {
				p.advance()
				fn.VariadicType = p.parseTypeAnnotation()
			}
			break
		}
		name := p.parseIdentifier()
		param := &ast.Param{Name: name}
		if p.cur.Type == token.COLON {
			p.advance()
			param.Annotation = p.parseTypeAnnotation()
		}
		fn.Params = append(fn.Params, param)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	if p.cur.Type == token.COLON {
		p.advance()
		fn.ReturnType = p.parseTypeAnnotation()
	}

	fn.Body = p.parseBlock(token.END)
	p.expect(token.END)
	return fn
}

// parseGenericParams parses an optional `<Name [: Bound], ...>` clause,
// reusing the LT/GT tokens contextually - they never appear in this
// position as comparison operators.
func (p *Parser) parseGenericParams() []*ast.GenericParamClause {
	if p.cur.Type != token.LT {
		return nil
	}
	p.advance()
	var params []*ast.GenericParamClause
	for p.cur.Type != token.GT && p.cur.Type != token.EOF {
		name := p.parseIdentifier()
		clause := &ast.GenericParamClause{Name: name}
		if p.cur.Type == token.COLON {
			p.advance()
			clause.Bound = p.parseTypeAnnotation()
		}
		params = append(params, clause)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GT)
	return params
}
