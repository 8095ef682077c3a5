package parser

import (
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.LOCAL:
		return p.parseLocalOrLocalFunction()
	case token.GLOBAL:
		return p.parseGlobalDeclaration()
	case token.FUNCTION:
		return p.parseFunctionOrMethodStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		tok := p.cur
		p.advance()
		return &ast.BreakStatement{Token: tok}
	case token.DO:
		return p.parseDoStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.INTERFACE:
		return p.parseInterfaceDeclaration()
	case token.TYPE:
		return p.parseTypeAliasDeclaration()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseNameAnnotationList() ([]*ast.Identifier, []ast.Type) {
	var names []*ast.Identifier
	var annotations []ast.Type
	for {
		name := p.parseIdentifier()
		names = append(names, name)
		var ann ast.Type
		if p.cur.Type == token.COLON {
			p.advance()
			ann = p.parseTypeAnnotation()
		}
		annotations = append(annotations, ann)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return names, annotations
}

func (p *Parser) parseExpressionList() []ast.Expression {
	var exprs []ast.Expression
	exprs = append(exprs, p.parseExpression(lowest))
	for p.cur.Type == token.COMMA {
		p.advance()
		exprs = append(exprs, p.parseExpression(lowest))
	}
	return exprs
}

// parseLocalOrLocalFunction disambiguates `local function name(...) ... end`
// from a plain `local x, y : T = v1, v2` declaration by looking one token
// past `local`.
func (p *Parser) parseLocalOrLocalFunction() ast.Statement {
	tok := p.cur
	if p.peek.Type == token.FUNCTION {
		p.advance() // consume "local"
		fnTok := p.cur
		p.advance() // consume "function"
		name := p.parseIdentifier()
		fn := p.parseFunctionLiteralBody()
		return &ast.FunctionStatement{Token: fnTok, Name: name, IsLocal: true, Func: fn}
	}

	p.advance() // consume "local"
	names, annotations := p.parseNameAnnotationList()
	var values []ast.Expression
	if p.cur.Type == token.ASSIGN {
		p.advance()
		values = p.parseExpressionList()
	}
	return &ast.LocalDeclaration{Token: tok, Names: names, Annotations: annotations, Values: values}
}

func (p *Parser) parseGlobalDeclaration() ast.Statement {
	tok := p.cur
	p.advance()
	names, annotations := p.parseNameAnnotationList()
	var values []ast.Expression
	if p.cur.Type == token.ASSIGN {
		p.advance()
		values = p.parseExpressionList()
	}
	return &ast.GlobalDeclaration{Token: tok, Names: names, Annotations: annotations, Values: values}
}

// parseFunctionOrMethodStatement handles `function name(...) ... end`,
// `function a.b.c(...) ... end` (dot syntax, no implicit self) and
// `function a.b:m(...) ... end` (colon syntax, implicit self).
func (p *Parser) parseFunctionOrMethodStatement() ast.Statement {
	tok := p.cur
	p.advance()

	first := p.parseIdentifier()
	var target ast.Expression = first
	for p.cur.Type == token.DOT {
		p.advance()
		field := p.parseIdentifier()
		target = &ast.FieldAccessExpression{Token: field.Token, Target: target, Name: field}
	}

	if p.cur.Type == token.COLON {
		p.advance()
		method := p.parseIdentifier()
		fn := p.parseFunctionLiteralBody()
		return &ast.MethodStatement{Token: tok, Target: target, MethodName: method, IsSelfMethod: true, Func: fn}
	}

	if fa, ok := target.(*ast.FieldAccessExpression); ok {
		fn := p.parseFunctionLiteralBody()
		return &ast.MethodStatement{Token: tok, Target: fa.Target, MethodName: fa.Name, IsSelfMethod: false, Func: fn}
	}

	fn := p.parseFunctionLiteralBody()
	return &ast.FunctionStatement{Token: tok, Name: first, IsLocal: false, Func: fn}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.cur
	p.advance()
	var values []ast.Expression
	if !p.atAny([]token.Type{token.END, token.ELSE, token.ELSEIF, token.UNTIL, token.EOF, token.SEMICOLON}) {
		values = p.parseExpressionList()
	}
	return &ast.ReturnStatement{Token: tok, Values: values}
}

func (p *Parser) parseDoStatement() ast.Statement {
	tok := p.cur
	p.advance()
	body := p.parseBlock(token.END)
	p.expect(token.END)
	return &ast.DoStatement{Token: tok, Body: body}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.cur
	p.advance()
	cond := p.parseExpression(lowest)
	p.expect(token.THEN)
	then := p.parseBlock(token.ELSEIF, token.ELSE, token.END)

	stmt := &ast.IfStatement{Token: tok, Cond: cond, Then: then}
	for p.cur.Type == token.ELSEIF {
		eiTok := p.cur
		p.advance()
		eiCond := p.parseExpression(lowest)
		p.expect(token.THEN)
		eiBody := p.parseBlock(token.ELSEIF, token.ELSE, token.END)
		stmt.ElseIfs = append(stmt.ElseIfs, &ast.ElseIfClause{Token: eiTok, Cond: eiCond, Body: eiBody})
	}
	if p.cur.Type == token.ELSE {
		p.advance()
		stmt.Else = p.parseBlock(token.END)
	}
	p.expect(token.END)
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.cur
	p.advance()
	cond := p.parseExpression(lowest)
	p.expect(token.DO)
	body := p.parseBlock(token.END)
	p.expect(token.END)
	return &ast.WhileStatement{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	tok := p.cur
	p.advance()
	body := p.parseBlock(token.UNTIL)
	p.expect(token.UNTIL)
	cond := p.parseExpression(lowest)
	return &ast.RepeatStatement{Token: tok, Body: body, Cond: cond}
}

// parseForStatement disambiguates the numeric and generic for forms by
// looking for `=` immediately after the first name.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.cur
	p.advance()
	first := p.parseIdentifier()

	if p.cur.Type == token.ASSIGN {
		p.advance()
		start := p.parseExpression(lowest)
		p.expect(token.COMMA)
		stop := p.parseExpression(lowest)
		var step ast.Expression
		if p.cur.Type == token.COMMA {
			p.advance()
			step = p.parseExpression(lowest)
		}
		p.expect(token.DO)
		body := p.parseBlock(token.END)
		p.expect(token.END)
		return &ast.NumericForStatement{Token: tok, Var: first, Start: start, Stop: stop, Step: step, Body: body}
	}

	names := []*ast.Identifier{first}
	for p.cur.Type == token.COMMA {
		p.advance()
		names = append(names, p.parseIdentifier())
	}
	p.expect(token.IN)
	exprs := p.parseExpressionList()
	p.expect(token.DO)
	body := p.parseBlock(token.END)
	p.expect(token.END)
	return &ast.GenericForStatement{Token: tok, Names: names, Exprs: exprs, Body: body}
}

func (p *Parser) parseInterfaceDeclaration() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.parseIdentifier()
	genParams := p.parseGenericParams()
	p.expect(token.COLON)
	body := p.parseTableTypeAnnotation()
	return &ast.InterfaceDeclaration{Token: tok, Name: name, GenericParams: genParams, Body: body}
}

func (p *Parser) parseTypeAliasDeclaration() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.parseIdentifier()
	genParams := p.parseGenericParams()
	p.expect(token.ASSIGN)
	value := p.parseTypeAnnotation()
	return &ast.TypeAliasDeclaration{Token: tok, Name: name, GenericParams: genParams, Value: value}
}

// parseExpressionOrAssignStatement covers both a bare call used for its
// side effects and `lhs1, lhs2 = rhs1, rhs2`.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	tok := p.cur
	first := p.parseExpression(lowest)

	if p.cur.Type == token.ASSIGN || p.cur.Type == token.COMMA {
		lhs := []ast.Expression{first}
		for p.cur.Type == token.COMMA {
			p.advance()
			lhs = append(lhs, p.parseExpression(lowest))
		}
		p.expect(token.ASSIGN)
		rhs := p.parseExpressionList()
		return &ast.AssignStatement{Token: tok, LHS: lhs, RHS: rhs}
	}

	return &ast.ExpressionStatement{Token: tok, Call: first}
}
