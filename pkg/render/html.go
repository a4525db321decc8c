package render

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"

	"github.com/matzehuels/perfreport/pkg/errors"
)

const defaultMaxAudits = 25

// HTMLOption configures an [HTMLRenderer].
type HTMLOption func(*HTMLRenderer)

// WithMaxAudits caps the number of failing audits listed. Zero or less
// lists none.
func WithMaxAudits(n int) HTMLOption { return func(r *HTMLRenderer) { r.maxAudits = n } }

// WithTitle sets the page title prefix.
func WithTitle(title string) HTMLOption { return func(r *HTMLRenderer) { r.title = title } }

// HTMLRenderer renders a self-contained HTML page summarising a result.
type HTMLRenderer struct {
	title     string
	maxAudits int
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{title: "Lighthouse Report", maxAudits: defaultMaxAudits}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type htmlData struct {
	Title   string
	Summary *Summary
	Audits  []AuditResult
	Omitted int
}

// Render implements [Renderer].
func (r *HTMLRenderer) Render(ctx context.Context, doc json.RawMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := Summarize(doc)
	if err != nil {
		return "", err
	}

	data := htmlData{Title: r.title, Summary: s, Audits: s.FailingAudits}
	if r.maxAudits < 0 {
		data.Audits = nil
	} else if len(data.Audits) > r.maxAudits {
		data.Audits = data.Audits[:r.maxAudits]
	}
	data.Omitted = len(s.FailingAudits) - len(data.Audits)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "execute report template")
	}
	return buf.String(), nil
}

// Ensure HTMLRenderer implements Renderer.
var _ Renderer = (*HTMLRenderer)(nil)

func scoreClass(score *int) string {
	switch {
	case score == nil:
		return "na"
	case *score >= 90:
		return "pass"
	case *score >= 50:
		return "average"
	}
	return "fail"
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"scoreClass": scoreClass,
	"percent":    func(f float64) int { return int(f*100 + 0.5) },
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}{{with .Summary.RequestedURL}} - {{.}}{{end}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem;color:#212121}
.scores{display:flex;gap:1.5rem;list-style:none;padding:0}
.score{font-size:2rem;font-weight:600}
.pass{color:#0c6}.average{color:#fa3}.fail{color:#f33}.na{color:#999}
table{border-collapse:collapse}td,th{padding:.25rem .75rem;text-align:left}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<dl>
{{- with .Summary.RequestedURL}}<dt>Requested URL</dt><dd><a href="{{.}}">{{.}}</a></dd>{{end}}
{{- with .Summary.FinalURL}}<dt>Final URL</dt><dd><a href="{{.}}">{{.}}</a></dd>{{end}}
{{- if not .Summary.FetchTime.IsZero}}<dt>Fetched</dt><dd>{{.Summary.FetchTime.UTC.Format "2006-01-02 15:04:05 MST"}}</dd>{{end}}
{{- with .Summary.LighthouseVersion}}<dt>Lighthouse</dt><dd>{{.}}</dd>{{end}}
</dl>
{{- if .Summary.Categories}}
<ul class="scores">
{{- range .Summary.Categories}}
<li><div class="score {{scoreClass .Score}}">{{if .Score}}{{.Score}}{{else}}-{{end}}</div><div>{{if .Title}}{{.Title}}{{else}}{{.ID}}{{end}}</div></li>
{{- end}}
</ul>
{{- end}}
{{- if .Audits}}
<h2>Opportunities &amp; failing audits</h2>
<table>
<tr><th>Audit</th><th>Score</th><th>Value</th></tr>
{{- range .Audits}}
<tr><td>{{if .Title}}{{.Title}}{{else}}{{.ID}}{{end}}</td><td>{{percent .Score}}</td><td>{{.DisplayValue}}</td></tr>
{{- end}}
</table>
{{- if .Omitted}}<p>{{.Omitted}} more not shown.</p>{{end}}
{{- end}}
</body>
</html>
`))
