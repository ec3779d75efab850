package domain

// Validation is the typed outcome of the grammar walk. Structural failures
// are values carrying a human-readable reason, never panics.
type Validation struct {
	Valid  bool
	Reason string
}

// Invalid builds a failed validation with the given reason.
func Invalid(reason string) Validation {
	return Validation{Valid: false, Reason: reason}
}

// ValidOK is the successful validation value.
var ValidOK = Validation{Valid: true}

// Result is what a full engine run returns. Value is nil when no dispatch
// candidate matched (a normal "nothing to do", not an error). Stored names
// the variable the value was written into, when the sentence's direct
// object was an output placeholder.
type Result struct {
	Validation Validation
	Sentence   *Sentence
	Value      any
	Stored     string
}
