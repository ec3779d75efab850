// Package compiler turns raw sentence text into validated word chains:
// tokenization, pattern matching, word resolution, grammar validation and
// sentence building.
package compiler
