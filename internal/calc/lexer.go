package calc

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

var singleCharTokens = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'^': Caret,
	'!': Bang,
	'(': LParen,
	')': RParen,
	',': Comma,
}

// Lex splits src into tokens. The source is NFKC-normalized first so that
// full-width digits and operators are accepted; offsets refer to the
// normalized text. The returned slice always ends with an EOF token.
func Lex(src string) ([]Token, error) {
	src = norm.NFKC.String(src)
	var toks []Token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case isDigit(ch) || (ch == '.' && i+1 < len(src) && isDigit(src[i+1])):
			tok, next, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case isIdentStart(ch):
			start := i
			for i < len(src) && (isIdentStart(src[i]) || isDigit(src[i])) {
				i++
			}
			toks = append(toks, Token{Kind: Ident, Text: src[start:i], Offset: start})
		default:
			kind, ok := singleCharTokens[ch]
			if !ok {
				return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unexpected character %q", ch)}
			}
			toks = append(toks, Token{Kind: kind, Text: src[i : i+1], Offset: i})
			i++
		}
	}
	toks = append(toks, Token{Kind: EOF, Offset: len(src)})
	return toks, nil
}

// scanNumber reads digits, an optional fraction and an optional exponent.
func scanNumber(src string, start int) (Token, int, error) {
	i := start
	kind := Int
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		kind = Decimal
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		kind = Decimal
		i++
		if i < len(src) && (src[i] == '+' || src[i] == '-') {
			i++
		}
		if i >= len(src) || !isDigit(src[i]) {
			return Token{}, 0, &SyntaxError{Offset: i, Msg: "malformed exponent"}
		}
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	return Token{Kind: kind, Text: src[start:i], Offset: start}, i, nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
