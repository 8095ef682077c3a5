package lexer_test

import (
	"testing"

	"github.com/funvibe/typedlua/internal/lexer"
	"github.com/funvibe/typedlua/internal/token"
)

func TestNextToken_Keywords(t *testing.T) {
	input := `local x = 1 if then else elseif end while do repeat until for in break function return global interface type self`
	want := []token.Type{
		token.LOCAL, token.IDENT, token.ASSIGN, token.NUMBER_INT,
		token.IF, token.THEN, token.ELSE, token.ELSEIF, token.END,
		token.WHILE, token.DO, token.REPEAT, token.UNTIL, token.FOR, token.IN,
		token.BREAK, token.FUNCTION, token.RETURN, token.GLOBAL,
		token.INTERFACE, token.TYPE, token.SELF, token.EOF,
	}
	l := lexer.New(input)
	for i, wt := range want {
		tok := l.NextToken()
		if tok.Type != wt {
			t.Fatalf("token %d: got %v, want %v (lexeme %q)", i, tok.Type, wt, tok.Lexeme)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / % .. == ~= < > <= >= : , ; | ( ) { } [ ] . ...`
	want := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.CONCAT, token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE,
		token.COLON, token.COMMA, token.SEMICOLON, token.PIPE,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.DOT, token.DOTDOTDOT, token.EOF,
	}
	l := lexer.New(input)
	for i, wt := range want {
		tok := l.NextToken()
		if tok.Type != wt {
			t.Fatalf("token %d: got %v, want %v (lexeme %q)", i, tok.Type, wt, tok.Lexeme)
		}
	}
}

func TestNextToken_IdentCaseDistinguishesConstructors(t *testing.T) {
	l := lexer.New("foo Bar")
	first := l.NextToken()
	if first.Type != token.IDENT {
		t.Fatalf("got %v, want IDENT", first.Type)
	}
	second := l.NextToken()
	if second.Type != token.IDENT_UPPER {
		t.Fatalf("got %v, want IDENT_UPPER", second.Type)
	}
}

func TestNextToken_Numbers(t *testing.T) {
	cases := []struct {
		input string
		want  token.Type
	}{
		{"42", token.NUMBER_INT},
		{"3.14", token.NUMBER_FLOAT},
		{"1e10", token.NUMBER_FLOAT},
		{"2.5e-3", token.NUMBER_FLOAT},
	}
	for _, c := range cases {
		l := lexer.New(c.input)
		tok := l.NextToken()
		if tok.Type != c.want {
			t.Errorf("%q: got %v, want %v", c.input, tok.Type, c.want)
		}
		if tok.Lexeme != c.input {
			t.Errorf("%q: lexeme = %q", c.input, tok.Lexeme)
		}
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := lexer.New(`"a\nb\tc"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %v, want STRING", tok.Type)
	}
	if tok.Literal != "a\nb\tc" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestNextToken_CommentsSkipped(t *testing.T) {
	l := lexer.New("-- a comment\nlocal")
	tok := l.NextToken()
	if tok.Type != token.LOCAL {
		t.Fatalf("got %v, want LOCAL", tok.Type)
	}
}

func TestNextToken_IllegalCharacter(t *testing.T) {
	l := lexer.New("@")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok.Type)
	}
}
