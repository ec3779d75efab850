package compiler

import (
	"iter"
	"strings"
	"unicode"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

// Terminators are the characters a sentence may end with. The terminator is
// glued onto the final token rather than emitted on its own.
const Terminators = ".?!"

// Scan returns a lazy, restartable sequence of token strings. Whitespace
// separates tokens only while both the bracket and the brace depth are zero,
// so "[my var]" and "{http://host/a b}" stay single tokens. Unmatched
// delimiters are tolerated: the depth counters may go negative without an
// error.
func Scan(input string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var b strings.Builder
		brackets, braces := 0, 0
		for _, r := range input {
			switch r {
			case '[':
				brackets++
			case ']':
				brackets--
			case '{':
				braces++
			case '}':
				braces--
			}
			if unicode.IsSpace(r) && brackets == 0 && braces == 0 {
				if b.Len() > 0 {
					if !yield(b.String()) {
						return
					}
					b.Reset()
				}
				continue
			}
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			yield(b.String())
		}
	}
}

// Split collects the scan into a slice.
func Split(input string) []string {
	var out []string
	for tok := range Scan(input) {
		out = append(out, tok)
	}
	return out
}

// Tokenize produces the token chain for a sentence. The chain always begins
// with a Root sentinel and ends with a Terminal sentinel.
func Tokenize(input string) []domain.Token {
	tokens := []domain.Token{{Kind: domain.TokenRoot}}
	for tok := range Scan(input) {
		tokens = append(tokens, domain.Token{Value: tok, Kind: classify(tok)})
	}
	return append(tokens, domain.Token{Kind: domain.TokenTerminal})
}

// classify assigns the lexical kind, ignoring a glued trailing terminator.
func classify(tok string) domain.TokenKind {
	body := strings.TrimRight(tok, Terminators)
	switch {
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]"):
		return domain.TokenVariable
	case strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}"):
		return domain.TokenReference
	default:
		return domain.TokenRegular
	}
}
