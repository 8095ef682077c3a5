// Package parser turns source text into an internal/ast.Program plus a
// diagnostics.Bag of syntax errors, using plain recursive descent with a
// Pratt-style precedence loop for expressions, scaled to this language's
// grammar (no traits, no pattern matching, no package statements).
package parser

import (
	"github.com/funvibe/typedlua/internal/ast"
	"github.com/funvibe/typedlua/internal/diagnostics"
	"github.com/funvibe/typedlua/internal/lexer"
	"github.com/funvibe/typedlua/internal/token"
)

// Parser holds one file's worth of parsing state: the lexer, one token of
// lookahead beyond the current token, and the accumulated syntax errors.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors *diagnostics.Bag
}

// Parse runs the parser over source and returns the resulting Program
// together with any syntax diagnostics. The Program is never nil, even
// when diagnostics are non-empty - the checker still walks what could be
// recovered, a "(Some(root), errors)" outcome.
func Parse(file, source string) (*ast.Program, *diagnostics.Bag) {
	p := &Parser{lex: lexer.New(source), errors: diagnostics.NewBag()}
	p.advance()
	p.advance()

	prog := &ast.Program{File: file}
	for p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.advance()
		}
	}
	return prog, p.errors
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(at token.Token, format string, args ...interface{}) {
	p.errors.Add(diagnostics.New(diagnostics.ErrSyntax, at, format, args...))
}

// expect consumes the current token if it has type t, reporting a syntax
// error and leaving the cursor in place otherwise (so the caller's own
// recovery, usually "give up on this construct", still makes progress).
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf(p.cur, "unexpected %q", p.cur.Lexeme)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.cur
	if tok.Type != token.IDENT && tok.Type != token.IDENT_UPPER {
		p.errorf(tok, "expected identifier, got %q", tok.Lexeme)
	} else {
		p.advance()
	}
	return &ast.Identifier{Token: tok, Value: tok.Lexeme}
}

// parseBlock consumes statements up to (but not including) one of the
// tokens in terminators, or EOF.
func (p *Parser) parseBlock(terminators ...token.Type) *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur}
	for !p.atAny(terminators) && p.cur.Type != token.EOF {
		if p.cur.Type == token.SEMICOLON {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.advance()
		}
	}
	return block
}

func (p *Parser) atAny(types []token.Type) bool {
	for _, t := range types {
		if p.cur.Type == t {
			return true
		}
	}
	return false
}
