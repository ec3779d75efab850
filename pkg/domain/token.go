package domain

// TokenKind classifies a lexical unit produced by the tokenizer.
type TokenKind int

const (
	// TokenRoot is the sentinel that starts every token chain.
	TokenRoot TokenKind = iota
	// TokenRegular is a plain word token.
	TokenRegular
	// TokenVariable is a bracket-delimited token, e.g. "[text]".
	TokenVariable
	// TokenReference is a brace-delimited token, e.g. "{file.txt}".
	TokenReference
	// TokenTerminal is the sentinel that ends every token chain.
	TokenTerminal
)

// Token is one lexical unit. Chains are built in sequence by the tokenizer
// and are immutable once created: the first token is always Root and the
// last is always Terminal.
type Token struct {
	Value string
	Kind  TokenKind
}

// IsSentinel reports whether the token is one of the chain boundaries.
func (t Token) IsSentinel() bool {
	return t.Kind == TokenRoot || t.Kind == TokenTerminal
}
