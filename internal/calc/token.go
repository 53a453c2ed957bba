package calc

// Kind represents the category of an expression token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	Int     // 123
	Decimal // 1.25, 2e-3
	Ident   // gcd

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Caret   // ^
	Bang    // !
	LParen  // (
	RParen  // )
	Comma   // ,
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Int:
		return "integer"
	case Decimal:
		return "decimal"
	case Ident:
		return "identifier"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Star:
		return "'*'"
	case Slash:
		return "'/'"
	case Percent:
		return "'%'"
	case Caret:
		return "'^'"
	case Bang:
		return "'!'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	default:
		return "invalid"
	}
}

// Token is a lexeme with its byte offset in the normalized source.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}
