package lexer

import (
	"reflect"
	"testing"

	"kiln/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanSymbols(t *testing.T) {
	tokens, err := New(`! != (); `).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.BANG, token.NOT_EQUAL, token.LPAREN, token.RPAREN, token.SEMICOLON, token.EOF}
	if got := kinds(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestScanVariableDeclaration(t *testing.T) {
	tokens, err := New(`let number=1234;`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []token.Kind{token.LET, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF}
	if got := kinds(tokens); !reflect.DeepEqual(got, wantKinds) {
		t.Errorf("kinds = %v, want %v", got, wantKinds)
	}
	wantLexemes := []string{"let", "number", "=", "1234", ";", ""}
	for i, want := range wantLexemes {
		if tokens[i].Lexeme != want {
			t.Errorf("tokens[%d].Lexeme = %q, want %q", i, tokens[i].Lexeme, want)
		}
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := New(`"unterminated`).Scan()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestScanNumbers(t *testing.T) {
	tokens, err := New(`0 123 4567890`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLiterals := []int64{0, 123, 4567890}
	var gotLiterals []int64
	for _, tok := range tokens {
		if tok.Kind == token.NUMBER {
			gotLiterals = append(gotLiterals, tok.Literal.(int64))
		}
	}
	if !reflect.DeepEqual(gotLiterals, wantLiterals) {
		t.Errorf("literals = %v, want %v", gotLiterals, wantLiterals)
	}
}

func TestScanIdentifierAndKeyword(t *testing.T) {
	tokens, err := New(`let foo`).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != token.LET {
		t.Errorf("tokens[0].Kind = %v, want LET", tokens[0].Kind)
	}
	if tokens[1].Kind != token.IDENTIFIER || tokens[1].Lexeme != "foo" {
		t.Errorf("tokens[1] = %+v, want IDENTIFIER foo", tokens[1])
	}
}

func TestScanSkipsComments(t *testing.T) {
	tokens, err := New("let x = 1; # trailing comment\n").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kinds(tokens)[len(kinds(tokens))-1] != token.EOF {
		t.Errorf("last token should be EOF, got %v", tokens[len(tokens)-1])
	}
}
