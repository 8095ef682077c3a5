package parser

import (
	"strconv"

	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/token"
)

// parseTypeAnnotation parses one `: T` clause's right-hand side, including
// a top-level `T1 | T2 | ...` sum.
func (p *Parser) parseTypeAnnotation() ast.Type {
	left := p.parseTypePrimary()
	if p.cur.Type != token.PIPE {
		return left
	}
	sum := &ast.SumType{Token: left.GetToken(), Members: []ast.Type{left}}
	for p.cur.Type == token.PIPE {
		p.advance()
		sum.Members = append(sum.Members, p.parseTypePrimary())
	}
	return sum
}

func (p *Parser) parseTypePrimary() ast.Type {
	switch p.cur.Type {
	case token.LT:
		return p.parseFunctionTypeWithGenerics()
	case token.LPAREN:
		return p.parseParenType()
	case token.LBRACE:
		return p.parseTableTypeAnnotation()
	case token.NUMBER_INT:
		tok := p.cur
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.LiteralType{Token: tok, IsNumber: true, IntVal: v}
	case token.NUMBER_FLOAT:
		tok := p.cur
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.LiteralType{Token: tok, IsNumber: true, IsFloat: true, FloatVal: v}
	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.LiteralType{Token: tok, IsString: true, Str: tok.Literal}
	case token.TRUE:
		tok := p.cur
		p.advance()
		return &ast.LiteralType{Token: tok, IsBool: true, Bool: true}
	case token.FALSE:
		tok := p.cur
		p.advance()
		return &ast.LiteralType{Token: tok, IsBool: true, Bool: false}
	case token.NIL:
		tok := p.cur
		p.advance()
		return &ast.LiteralType{Token: tok, IsNil: true}
	case token.IDENT, token.IDENT_UPPER:
		return p.parseNamedType()
	default:
		tok := p.cur
		p.errorf(tok, "unexpected %q in type annotation", tok.Lexeme)
		p.advance()
		return &ast.NamedType{Token: tok, Name: &ast.Identifier{Token: tok, Value: tok.Lexeme}}
	}
}

func (p *Parser) parseNamedType() ast.Type {
	tok := p.cur
	name := p.parseIdentifier()
	nt := &ast.NamedType{Token: tok, Name: name}
	if p.cur.Type == token.LT {
		p.advance()
		for p.cur.Type != token.GT && p.cur.Type != token.EOF {
			nt.Args = append(nt.Args, p.parseTypeAnnotation())
			if p.cur.Type == token.COMMA {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.GT)
	}
	return nt
}

// parseFunctionTypeWithGenerics handles a type annotation that opens with
// its own generic parameter clause, e.g. `<T>(T): T`. The clause is only
// meaningful attached to a function type, so anything else after it is a
// syntax error.
func (p *Parser) parseFunctionTypeWithGenerics() ast.Type {
	tok := p.cur
	gens := p.parseGenericParams()
	t := p.parseParenType()
	if fn, ok := t.(*ast.FunctionType); ok {
		fn.GenericParams = gens
		return fn
	}
	p.errorf(tok, "generic parameters are only valid on a function type")
	return t
}

// parseParenType disambiguates `(T1, T2)` (a TupleType) from `(T1, T2): R`
// (a FunctionType) by checking for a trailing COLON once the closing paren
// is consumed.
func (p *Parser) parseParenType() ast.Type {
	tok := p.cur
	p.expect(token.LPAREN)

	var elems []ast.Type
	variadic := false
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		if p.cur.Type == token.DOTDOTDOT {
			p.advance()
			variadic = true
			if p.cur.Type != token.RPAREN && p.cur.Type != token.COMMA {
				elems = append(elems, p.parseTypeAnnotation())
			}
			break
		}
		elems = append(elems, p.parseTypeAnnotation())
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	if p.cur.Type == token.COLON {
		p.advance()
		ret := p.parseTypeAnnotation()
		return &ast.FunctionType{Token: tok, Params: elems, Variadic: variadic, ReturnType: ret}
	}
	return &ast.TupleType{Token: tok, Elems: elems, Variadic: variadic}
}

// parseTableTypeAnnotation parses `{ name: T; [K]: V; ... }`, used both for
// a `: { ... }` table type annotation and for an interface's body.
func (p *Parser) parseTableTypeAnnotation() *ast.TableType {
	tok := p.cur
	p.expect(token.LBRACE)
	tt := &ast.TableType{Token: tok}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if p.cur.Type == token.LBRACKET {
			p.advance()
			key := p.parseTypeAnnotation()
			p.expect(token.RBRACKET)
			p.expect(token.COLON)
			value := p.parseTypeAnnotation()
			tt.Indexes = append(tt.Indexes, &ast.TableTypeIndex{Key: key, Value: value})
		} else {
			name := p.parseIdentifier()
			p.expect(token.COLON)
			value := p.parseTypeAnnotation()
			tt.Fields = append(tt.Fields, &ast.TableTypeField{Name: name, Value: value})
		}
		if p.cur.Type == token.COMMA || p.cur.Type == token.SEMICOLON {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return tt
}
