package domain

// Sentence is a validated chain of words headed by a verb, plus the ordered
// sub-sentences split off at each THEN connector. Words live in a flat
// arena; positions are indices into Words.
//
// A sentence is built once per run and discarded afterwards.
type Sentence struct {
	Words []Word
	Subs  []*Sentence
}

// Verb returns the sentence's leading verb word, or nil if the sentence is
// empty or does not start with a verb.
func (s *Sentence) Verb() *VerbWord {
	if len(s.Words) == 0 {
		return nil
	}
	v, _ := s.Words[0].(*VerbWord)
	return v
}

// At returns the word at index i, or nil when out of range.
func (s *Sentence) At(i int) Word {
	if i < 0 || i >= len(s.Words) {
		return nil
	}
	return s.Words[i]
}

// IndexOfRole returns the index of the preposition word introducing the
// given role, or -1 when the sentence does not carry it.
func (s *Sentence) IndexOfRole(r Role) int {
	for i, w := range s.Words {
		if p, ok := w.(*PrepositionWord); ok && p.Role == r {
			return i
		}
	}
	return -1
}

// Span returns the contiguous words belonging to a role: for RoleWhat the
// words after the verb, for prepositional roles the words after their
// keyword, in both cases stopping at the next preposition or the end of the
// sentence.
func (s *Sentence) Span(r Role) []Word {
	start := -1
	if r == RoleWhat {
		if s.Verb() != nil {
			start = 1
		}
	} else {
		if i := s.IndexOfRole(r); i >= 0 {
			start = i + 1
		}
	}
	if start < 0 {
		return nil
	}
	end := start
	for end < len(s.Words) {
		if s.Words[end].Kind() == WordPreposition {
			break
		}
		end++
	}
	return s.Words[start:end]
}

// HasRole reports whether the sentence carries the role: RoleWhat when a
// direct object follows the verb, prepositional roles when their keyword is
// present.
func (s *Sentence) HasRole(r Role) bool {
	if r == RoleWhat {
		return len(s.Span(RoleWhat)) > 0
	}
	return s.IndexOfRole(r) >= 0
}

// Text reconstructs the sentence for logging and error messages.
func (s *Sentence) Text() string {
	out := ""
	for i, w := range s.Words {
		if i > 0 {
			out += " "
		}
		out += w.Text()
	}
	return out
}
