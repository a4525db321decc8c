package urlrewrite

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/matzehuels/perfreport/pkg/errors"
)

// Flags is the validated flag set of a [Rule].
type Flags struct {
	Global     bool // g
	IgnoreCase bool // i
	Multiline  bool // m
	Literal    bool // L, consumed before compilation
}

// String returns the flags in canonical order (g, i, m, L).
func (f Flags) String() string {
	var b strings.Builder
	if f.Global {
		b.WriteByte('g')
	}
	if f.IgnoreCase {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.Literal {
		b.WriteByte('L')
	}
	return b.String()
}

// options maps the engine-facing flags to regexp2 options. Literal and
// Global are handled by this package and never reach the engine.
func (f Flags) options() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	return opts
}

// ParseFlags validates a flag string. Every character must be one of
// g, i, m or L, and none may repeat.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, r := range s {
		var slot *bool
		switch r {
		case 'g':
			slot = &f.Global
		case 'i':
			slot = &f.IgnoreCase
		case 'm':
			slot = &f.Multiline
		case 'L':
			slot = &f.Literal
		default:
			return Flags{}, errors.New(errors.ErrCodeInvalidFlags, "invalid flags %q: unknown flag %q", s, r)
		}
		if *slot {
			return Flags{}, errors.New(errors.ErrCodeInvalidFlags, "invalid flags %q: duplicate flag %q", s, r)
		}
		*slot = true
	}
	return f, nil
}

// Rule is a parsed substitution pattern.
type Rule struct {
	Needle      string
	Replacement string
	Flags       Flags
}

// Parse splits a sed-like pattern into a [Rule]. The pattern must start
// with "s" followed by a delimiter and contain exactly three delimited
// sections: needle, replacement and flags.
func Parse(pattern string) (Rule, error) {
	if !strings.HasPrefix(pattern, "s") {
		return Rule{}, invalidPattern(pattern)
	}
	delim, size := utf8.DecodeRuneInString(pattern[1:])
	if size == 0 || delim == utf8.RuneError {
		return Rule{}, invalidPattern(pattern)
	}

	parts := strings.Split(pattern[1+size:], string(delim))
	if len(parts) != 3 {
		return Rule{}, invalidPattern(pattern)
	}

	flags, err := ParseFlags(parts[2])
	if err != nil {
		return Rule{}, err
	}
	return Rule{Needle: parts[0], Replacement: parts[1], Flags: flags}, nil
}

func invalidPattern(pattern string) error {
	return errors.New(errors.ErrCodeInvalidPattern, "invalid URL replacement pattern %q", pattern)
}

// Expression returns the needle as the engine will see it: escaped when
// the rule is literal, untouched otherwise.
func (r Rule) Expression() string {
	if r.Flags.Literal {
		return QuoteMeta(r.Needle)
	}
	return r.Needle
}

// Compile builds the matcher for r.
func (r Rule) Compile() (*Compiled, error) {
	re, err := regexp2.Compile(r.Expression(), r.Flags.options())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "invalid URL replacement needle %q", r.Needle)
	}
	return &Compiled{rule: r, re: re}, nil
}

// Compiled is a rule bound to its compiled expression.
type Compiled struct {
	rule Rule
	re   *regexp2.Regexp
}

// Apply substitutes the first match in s, or every match when the rule
// is global.
func (c *Compiled) Apply(s string) (string, error) {
	count := 1
	if c.rule.Flags.Global {
		count = -1
	}
	out, err := c.re.Replace(s, c.rule.Replacement, -1, count)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "apply %q", c.rule.Needle)
	}
	return out, nil
}

// metaReplacer escapes the characters the engine treats as operators.
var metaReplacer = strings.NewReplacer(
	`\`, `\\`,
	`^`, `\^`,
	`$`, `\$`,
	`.`, `\.`,
	`*`, `\*`,
	`+`, `\+`,
	`?`, `\?`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
)

// QuoteMeta escapes every regex metacharacter in s so the result matches
// s literally.
func QuoteMeta(s string) string {
	return metaReplacer.Replace(s)
}
