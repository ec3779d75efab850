// Package plainspeak interprets short, English-like command sentences such
// as
//
//	GET [text] FROM {file.txt}.
//
// and dispatches them to strongly-typed verb handlers. A sentence is
// tokenized with brace-aware splitting, validated against a small grammar,
// assembled into a word chain, and matched against the usage catalog of
// registered verb implementations; THEN chains several clauses into one run
// sharing a variable scope.
//
// The Engine type is the high-level entry point:
//
//	engine := plainspeak.New(plainspeak.WithUsages(verbs.Builtins(nil)...))
//	engine.RegisterVariable("data", "hello")
//	result, err := engine.Run(ctx, "SAVE [data] TO {out.txt}.")
//
// Hosts extend the vocabulary by registering keywords and usages; see
// pkg/lexicon for the descriptor types and pkg/verbs for the builtin
// implementations.
package plainspeak
