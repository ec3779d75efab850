// Package domain contains the core data model of the sentence engine:
// tokens, words, sentences, roles, keywords and the result types exchanged
// between the compiler, the dispatcher and host adapters.
//
// The package is intentionally dependency-free. Every other package imports
// it; it imports nothing but the standard library.
package domain
