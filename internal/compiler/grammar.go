package compiler

import (
	"fmt"
	"strings"

	"github.com/plainspeak/plainspeak/pkg/domain"
)

// Validate walks the word chain. The current validator is the most recent
// word declaring the successor capability (initially the leading verb); it
// judges each candidate next-word, and any word that also declares the
// capability takes over as the walk advances.
func Validate(words []domain.Word) domain.Validation {
	if len(words) == 0 {
		return domain.Invalid("empty sentence")
	}

	validator, ok := words[0].(domain.SuccessorValidator)
	if !ok || words[0].Kind() != domain.WordVerb {
		return domain.Invalid("sentence must start with a verb")
	}

	for i := 1; i < len(words); i++ {
		prev, next := words[i-1], words[i]

		if prev.Kind() == domain.WordConnector && next.Kind() != domain.WordVerb {
			return domain.Invalid(fmt.Sprintf("THEN must be followed by a verb, got %q", next.Text()))
		}

		if accepted, reason := validator.Accepts(prev, next); !accepted {
			return domain.Invalid(reason)
		}
		if sv, ok := next.(domain.SuccessorValidator); ok {
			validator = sv
		}
	}
	if words[len(words)-1].Kind() == domain.WordConnector {
		return domain.Invalid("THEN must be followed by a verb")
	}

	for _, clause := range splitClauses(words) {
		if v := clauseShapeViolation(clause); v != "" {
			return domain.Invalid(v)
		}
	}

	return domain.ValidOK
}

// clauseShapeViolation enforces the compound rule: a verb whose shape
// requires a source must see FROM right after its direct object, not the
// end of the clause or another keyword.
func clauseShapeViolation(clause []domain.Word) string {
	verb, ok := clause[0].(*domain.VerbWord)
	if !ok {
		return "sentence must start with a verb"
	}
	if !verb.Keyword.Roles.Has(domain.RoleFrom) {
		return ""
	}

	end := 1
	for end < len(clause) && clause[end].Kind() != domain.WordPreposition {
		end++
	}
	if end == 1 {
		// No direct object; nothing for FROM to qualify.
		return ""
	}
	if end >= len(clause) {
		return fmt.Sprintf("%s expects the %s keyword after its object", verb.Keyword.Name, domain.RoleFrom)
	}
	if p := clause[end].(*domain.PrepositionWord); p.Role != domain.RoleFrom {
		return fmt.Sprintf("%s expects the %s keyword after its object, got %q", verb.Keyword.Name, domain.RoleFrom, p.Text())
	}
	return ""
}

// splitClauses cuts the chain at each connector.
func splitClauses(words []domain.Word) [][]domain.Word {
	var clauses [][]domain.Word
	start := 0
	for i, w := range words {
		if w.Kind() == domain.WordConnector {
			if i > start {
				clauses = append(clauses, words[start:i])
			}
			start = i + 1
		}
	}
	if start < len(words) {
		clauses = append(clauses, words[start:])
	}
	return clauses
}

// CheckTerminator verifies, once and up front, that the final token carries
// a sentence terminator.
func CheckTerminator(tokens []domain.Token) domain.Validation {
	last := lastRegular(tokens)
	if last == nil {
		return domain.Invalid("empty sentence")
	}
	if !strings.ContainsAny(last.Value[len(last.Value)-1:], Terminators) {
		return domain.Invalid("sentence must end with '.', '?' or '!'")
	}
	return domain.ValidOK
}

func lastRegular(tokens []domain.Token) *domain.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !tokens[i].IsSentinel() && tokens[i].Value != "" {
			return &tokens[i]
		}
	}
	return nil
}
