package urlrewrite

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/perfreport/pkg/errors"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Flags
		wantErr bool
	}{
		{"empty", "", Flags{}, false},
		{"global", "g", Flags{Global: true}, false},
		{"all", "gimL", Flags{Global: true, IgnoreCase: true, Multiline: true, Literal: true}, false},
		{"any order", "Lig", Flags{Global: true, IgnoreCase: true, Literal: true}, false},

		{"duplicate g", "gg", Flags{}, true},
		{"duplicate L", "LgL", Flags{}, true},
		{"unknown", "x", Flags{}, true},
		{"sticky unsupported", "y", Flags{}, true},
		{"uppercase G", "G", Flags{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlags(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFlags) {
					t.Errorf("ParseFlags(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidFlags)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseFlags(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlagsString(t *testing.T) {
	f, err := ParseFlags("Lmig")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if got := f.String(); got != "gimL" {
		t.Errorf("String() = %q, want %q", got, "gimL")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		want     Rule
		wantCode errors.Code
	}{
		{
			name:    "slash delimiter",
			pattern: "s/a/b/",
			want:    Rule{Needle: "a", Replacement: "b"},
		},
		{
			name:    "hash delimiter keeps slashes",
			pattern: "s#http://localhost/#https://example.com/#g",
			want:    Rule{Needle: "http://localhost/", Replacement: "https://example.com/", Flags: Flags{Global: true}},
		},
		{
			name:    "empty replacement",
			pattern: "s/\\?.*$//",
			want:    Rule{Needle: `\?.*$`, Replacement: ""},
		},
		{
			name:    "backreference passes through",
			pattern: "s|/(\\w+)/|/$1-copy/|i",
			want:    Rule{Needle: `/(\w+)/`, Replacement: "/$1-copy/", Flags: Flags{IgnoreCase: true}},
		},
		{
			name:    "multibyte delimiter",
			pattern: "s→a→b→g",
			want:    Rule{Needle: "a", Replacement: "b", Flags: Flags{Global: true}},
		},

		{name: "no leading s", pattern: "/a/b/", wantCode: errors.ErrCodeInvalidPattern},
		{name: "only s", pattern: "s", wantCode: errors.ErrCodeInvalidPattern},
		{name: "missing section", pattern: "s/a/b", wantCode: errors.ErrCodeInvalidPattern},
		{name: "delimiter in replacement", pattern: "s/a/b/c/", wantCode: errors.ErrCodeInvalidPattern},
		{name: "empty", pattern: "", wantCode: errors.ErrCodeInvalidPattern},
		{name: "bad flags", pattern: "s/a/b/gg", wantCode: errors.ErrCodeInvalidFlags},
		{name: "unknown flag", pattern: "s/a/b/x", wantCode: errors.ErrCodeInvalidFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.pattern)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Parse(%q) = %+v, want error %v", tt.pattern, got, tt.wantCode)
				}
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.pattern, errors.GetCode(err), tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestRuleExpression(t *testing.T) {
	r := Rule{Needle: "[0-9]+", Flags: Flags{Literal: true}}
	if got, want := r.Expression(), `\[0-9\]\+`; got != want {
		t.Errorf("Expression() = %q, want %q", got, want)
	}

	r.Flags.Literal = false
	if got := r.Expression(); got != "[0-9]+" {
		t.Errorf("Expression() = %q, want needle unchanged", got)
	}
}

func TestQuoteMeta(t *testing.T) {
	in := `\^$.*+?()[]{}|`
	want := `\\\^\$\.\*\+\?\(\)\[\]\{\}\|`
	if got := QuoteMeta(in); got != want {
		t.Errorf("QuoteMeta(%q) = %q, want %q", in, got, want)
	}
	if got := QuoteMeta("plain-text/path"); got != "plain-text/path" {
		t.Errorf("QuoteMeta should leave ordinary characters alone, got %q", got)
	}
}

func TestCompileInvalidNeedle(t *testing.T) {
	r := Rule{Needle: "(unclosed", Replacement: "x"}
	if _, err := r.Compile(); !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("Compile() error = %v, want %v", err, errors.ErrCodeInvalidPattern)
	}

	// The same needle is fine once escaped.
	r.Flags.Literal = true
	c, err := r.Compile()
	if err != nil {
		t.Fatalf("Compile() literal error: %v", err)
	}
	got, err := c.Apply("a(unclosed")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "ax" {
		t.Errorf("Apply() = %q, want %q", got, "ax")
	}
}
