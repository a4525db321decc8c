package urlrewrite

import (
	"github.com/matzehuels/perfreport/pkg/observability"
)

// Rewriter applies an ordered list of compiled rules.
// The zero value has no rules and returns its input unchanged.
type Rewriter struct {
	rules []*Compiled
}

// NewRewriter parses and compiles every pattern up front. The first
// invalid pattern is returned as the error.
func NewRewriter(patterns []string) (*Rewriter, error) {
	rules := make([]*Compiled, 0, len(patterns))
	for _, p := range patterns {
		rule, err := Parse(p)
		if err != nil {
			return nil, err
		}
		c, err := rule.Compile()
		if err != nil {
			return nil, err
		}
		rules = append(rules, c)
	}
	return &Rewriter{rules: rules}, nil
}

// Len returns the number of rules.
func (rw *Rewriter) Len() int { return len(rw.rules) }

// Rewrite runs each rule over the output of the previous one.
func (rw *Rewriter) Rewrite(url string) (string, error) {
	out := url
	for _, c := range rw.rules {
		next, err := c.Apply(out)
		if err != nil {
			observability.Rewrite().OnRewrite(url, "", len(rw.rules), err)
			return "", err
		}
		out = next
	}
	observability.Rewrite().OnRewrite(url, out, len(rw.rules), nil)
	return out, nil
}

// Rewrite compiles patterns and applies them to url in order. With no
// patterns url is returned unchanged.
func Rewrite(url string, patterns []string) (string, error) {
	rw, err := NewRewriter(patterns)
	if err != nil {
		observability.Rewrite().OnRewrite(url, "", len(patterns), err)
		return "", err
	}
	return rw.Rewrite(url)
}
