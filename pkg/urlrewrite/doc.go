// Package urlrewrite rewrites tested URLs into shareable report links using
// sed-like substitution patterns.
//
// # Pattern Syntax
//
// A pattern has the form
//
//	s<d><needle><d><replacement><d><flags>
//
// where <d> is whatever character follows the leading "s". The delimiter
// may not appear inside the needle or the replacement. Flags are any
// combination of:
//
//   - g: replace every non-overlapping match instead of only the first
//   - i: case-insensitive matching
//   - m: multiline anchors
//   - L: treat the needle as a literal string rather than a regex
//
// Each flag may appear at most once. Unknown or repeated flags fail with
// [errors.ErrCodeInvalidFlags]; a malformed pattern fails with
// [errors.ErrCodeInvalidPattern].
//
// Needles are compiled with JavaScript regular expression semantics, and
// replacements keep their backreference syntax ($1, $&, $$).
//
// # Usage
//
//	url, err := urlrewrite.Rewrite("http://localhost:8080/docs/", []string{
//	    `s/localhost:\d+/staging.example.com/`,
//	    `s#/docs/#/documentation/#`,
//	})
//
// Patterns are applied in order, each to the output of the previous one.
// The first invalid pattern aborts the whole call.
//
// [errors.ErrCodeInvalidFlags]: github.com/matzehuels/perfreport/pkg/errors
// [errors.ErrCodeInvalidPattern]: github.com/matzehuels/perfreport/pkg/errors
package urlrewrite
