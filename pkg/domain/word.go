package domain

import "fmt"

// WordKind classifies a word node.
type WordKind int

const (
	WordVerb WordKind = iota
	WordVariable
	WordReference
	WordQualifier
	WordPreposition
	WordConnector
	WordLiteral
)

func (k WordKind) String() string {
	switch k {
	case WordVerb:
		return "verb"
	case WordVariable:
		return "variable"
	case WordReference:
		return "reference"
	case WordQualifier:
		return "qualifier"
	case WordPreposition:
		return "preposition"
	case WordConnector:
		return "connector"
	case WordLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Word is one typed node of a sentence. Words live in the sentence's flat
// arena; neighbours are reached by index arithmetic, not by live links.
type Word interface {
	Kind() WordKind
	// Text returns the word as it appeared in the sentence.
	Text() string
}

// SuccessorValidator is implemented by words that judge which word kinds may
// legally follow them during the grammar walk. The walk keeps the most
// recent word declaring this capability as the current validator; prev is
// the word immediately before next in the chain.
type SuccessorValidator interface {
	Accepts(prev, next Word) (ok bool, reason string)
}

// VerbWord heads a sentence. It wraps the resolved vocabulary keyword.
type VerbWord struct {
	Keyword *Keyword
	Raw     string // the token as typed, possibly a synonym
}

func (w *VerbWord) Kind() WordKind { return WordVerb }
func (w *VerbWord) Text() string   { return w.Raw }

// Accepts implements the verb's successor rules: arguments and prepositions
// may follow; a second verb may follow only across a THEN connector.
func (w *VerbWord) Accepts(prev, next Word) (bool, string) {
	switch next.Kind() {
	case WordVariable, WordReference, WordQualifier, WordLiteral:
		return true, ""
	case WordPreposition:
		return true, ""
	case WordConnector:
		if prev != nil && prev.Kind() == WordVerb {
			return false, fmt.Sprintf("%s cannot be followed directly by THEN", w.Keyword.Name)
		}
		return true, ""
	case WordVerb:
		if prev != nil && prev.Kind() == WordConnector {
			return true, ""
		}
		return false, fmt.Sprintf("unexpected verb %q: a new clause must be introduced by THEN", next.Text())
	default:
		return false, fmt.Sprintf("unexpected word %q after %s", next.Text(), w.Keyword.Name)
	}
}

// VariableWord holds a variable name reference, e.g. "[text]" or the
// destructuring form "[{a,b}]". It stays unresolved until execution: only
// the verb context decides whether it is an input (resolved eagerly) or an
// output placeholder (written after invocation).
type VariableWord struct {
	// Name is the text between the brackets.
	Name string
	Raw  string
}

func (w *VariableWord) Kind() WordKind { return WordVariable }
func (w *VariableWord) Text() string   { return w.Raw }

// ReferenceWord holds an inline literal value, e.g. a path or URL from
// "{file.txt}".
type ReferenceWord struct {
	Value string
	Raw   string
}

func (w *ReferenceWord) Kind() WordKind { return WordReference }
func (w *ReferenceWord) Text() string   { return w.Raw }

// QualifierWord is a format hint such as TEXT or JSON.
type QualifierWord struct {
	// Format is the canonical upper-case qualifier.
	Format string
	Raw    string
}

func (w *QualifierWord) Kind() WordKind { return WordQualifier }
func (w *QualifierWord) Text() string   { return w.Raw }

// PrepositionWord introduces a role span (FROM, TO, USING).
type PrepositionWord struct {
	Role Role
	Raw  string
}

func (w *PrepositionWord) Kind() WordKind { return WordPreposition }
func (w *PrepositionWord) Text() string   { return w.Raw }

// Accepts requires the preposition to receive an argument before the next
// structural word.
func (w *PrepositionWord) Accepts(prev, next Word) (bool, string) {
	argGiven := prev != nil && prev != Word(w) && prev.Kind() != WordPreposition
	switch next.Kind() {
	case WordVariable, WordReference, WordQualifier, WordLiteral:
		return true, ""
	case WordConnector, WordPreposition:
		if !argGiven {
			return false, fmt.Sprintf("%s expects a value before %q", w.Role.String(), next.Text())
		}
		return true, ""
	case WordVerb:
		if prev != nil && prev.Kind() == WordConnector {
			return true, ""
		}
		return false, fmt.Sprintf("unexpected verb %q after %s", next.Text(), w.Role.String())
	default:
		return false, fmt.Sprintf("unexpected word %q after %s", next.Text(), w.Role.String())
	}
}

// ConnectorWord chains clauses (THEN).
type ConnectorWord struct {
	Raw string
}

func (w *ConnectorWord) Kind() WordKind { return WordConnector }
func (w *ConnectorWord) Text() string   { return w.Raw }

// LiteralWord is the raw-text fallback for tokens no other resolution
// matched.
type LiteralWord struct {
	Value string
}

func (w *LiteralWord) Kind() WordKind { return WordLiteral }
func (w *LiteralWord) Text() string   { return w.Value }
