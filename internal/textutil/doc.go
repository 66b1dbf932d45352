// Package textutil canonicalizes artist and album strings for comparison
// against noisy platform search responses.
//
// Normalization lowercases text, folds full-width characters to their
// half-width forms, removes all whitespace, and strips the bracket and
// punctuation characters that platforms add around release titles. The result
// is a comparison key: two strings refer to the same release when one
// normalized form contains the other.
package textutil
