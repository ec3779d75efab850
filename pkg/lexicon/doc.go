// Package lexicon holds the engine's vocabulary: the catalog of registered
// keywords (verbs and structural nouns) and the usage catalog grouping verb
// implementations for dispatch.
//
// Registration is explicit and happens at startup. Both catalogs are
// read-only afterwards and safe to share across engine instances; calling
// Invalidate concurrently with readers is not supported.
package lexicon
