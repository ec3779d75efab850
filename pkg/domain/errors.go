package domain

import "errors"

// ErrVariableNotFound is returned when a sentence references a variable that
// was never registered. It is a hard error: the dispatcher aborts the whole
// run instead of trying further candidates.
var ErrVariableNotFound = errors.New("variable not found")

// ErrNoMatcher is returned when a matcher capability is requested from a
// family that was not configured.
var ErrNoMatcher = errors.New("no matcher configured for capability")

// ErrUnknownVerb is returned when a sentence starts with a token that does
// not resolve to a registered verb keyword.
var ErrUnknownVerb = errors.New("unknown verb")

// ErrAmbiguousDispatch is returned in strict mode when more than one usage
// candidate accepts the same sentence.
var ErrAmbiguousDispatch = errors.New("ambiguous dispatch")

// ErrSessionNotFound is returned when a session ID cannot be found in the
// snapshot store.
var ErrSessionNotFound = errors.New("session not found")
