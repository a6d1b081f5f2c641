package lexer

import "testing"

func collectTypes(t *testing.T, source string) []TokenType {
	t.Helper()
	l := New(source, "test.cmm")
	var types []TokenType
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		types = append(types, tok.Type)
		if tok.Type == TokenEOF {
			return types
		}
	}
}

func TestLexer_Keywords(t *testing.T) {
	source := "int bool void true false struct cin cout if else while repeat return"
	want := []TokenType{
		TokenInt, TokenBool, TokenVoid, TokenTrue, TokenFalse, TokenStruct,
		TokenCin, TokenCout, TokenIf, TokenElse, TokenWhile, TokenRepeat,
		TokenReturn, TokenEOF,
	}
	got := collectTypes(t, source)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_Identifiers(t *testing.T) {
	source := "foo bar _temp myVar123"
	l := New(source, "test.cmm")
	for _, want := range []string{"foo", "bar", "_temp", "myVar123"} {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != TokenIdentifier {
			t.Errorf("expected TokenIdentifier, got %v", tok.Type)
		}
		if tok.Lexeme != want {
			t.Errorf("expected %q, got %q", want, tok.Lexeme)
		}
	}
}

func TestLexer_IntLiteral(t *testing.T) {
	l := New("42 007", "test.cmm")
	for _, want := range []string{"42", "007"} {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != TokenIntLiteral {
			t.Errorf("expected TokenIntLiteral, got %v", tok.Type)
		}
		if tok.Lexeme != want {
			t.Errorf("expected %q, got %q", want, tok.Lexeme)
		}
	}
}

func TestLexer_IntLiteralOverflow(t *testing.T) {
	l := New("99999999999", "test.cmm")
	tok, err := l.NextToken()
	if err == nil {
		t.Fatalf("expected overflow error")
	}
	if tok.Type != TokenIntLiteral {
		t.Errorf("expected TokenIntLiteral despite overflow, got %v", tok.Type)
	}
}

func TestLexer_StringLiteral(t *testing.T) {
	source := `"hello" "with \"escape\""`
	l := New(source, "test.cmm")

	tok1, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok1.Type != TokenStringLiteral || tok1.Lexeme != `"hello"` {
		t.Errorf("got %v %q, want STRINGLITERAL %q", tok1.Type, tok1.Lexeme, `"hello"`)
	}

	tok2, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok2.Type != TokenStringLiteral {
		t.Errorf("got %v, want STRINGLITERAL", tok2.Type)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := New("\"oops\n", "test.cmm")
	_, err := l.NextToken()
	if err == nil {
		t.Fatalf("expected unterminated string error")
	}
}

func TestLexer_Operators(t *testing.T) {
	source := "+ - * / ++ -- ! && || == != < <= > >= = << >> . , ; ( ) { }"
	want := []TokenType{
		TokenPlus, TokenMinus, TokenTimes, TokenDivide,
		TokenPlusPlus, TokenMinusMinus, TokenNot, TokenAnd, TokenOr,
		TokenEquals, TokenNotEquals, TokenLess, TokenLessEq, TokenGreater, TokenGreaterEq,
		TokenAssign, TokenWrite, TokenRead, TokenDot, TokenComma, TokenSemicolon,
		TokenLParen, TokenRParen, TokenLCurly, TokenRCurly, TokenEOF,
	}
	got := collectTypes(t, source)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_LineComments(t *testing.T) {
	source := "int x; // trailing comment\nbool y;"
	got := collectTypes(t, source)
	want := []TokenType{
		TokenInt, TokenIdentifier, TokenSemicolon,
		TokenBool, TokenIdentifier, TokenSemicolon, TokenEOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_PositionTracking(t *testing.T) {
	l := New("foo\nbar", "test.cmm")

	tok1, _ := l.NextToken()
	if tok1.Position.Line != 1 || tok1.Position.Column != 1 {
		t.Errorf("token 1 position = %d:%d, want 1:1", tok1.Position.Line, tok1.Position.Column)
	}

	tok2, _ := l.NextToken()
	if tok2.Position.Line != 2 || tok2.Position.Column != 1 {
		t.Errorf("token 2 position = %d:%d, want 2:1", tok2.Position.Line, tok2.Position.Column)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	l := New("@", "test.cmm")
	tok, err := l.NextToken()
	if err == nil {
		t.Fatalf("expected an error for '@'")
	}
	if tok.Type != TokenInvalid {
		t.Errorf("expected TokenInvalid, got %v", tok.Type)
	}
}
