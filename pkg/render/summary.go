package render

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/matzehuels/perfreport/pkg/errors"
)

// Summary holds the fields of a Lighthouse result that reports display.
// Everything else in the document is ignored.
type Summary struct {
	RequestedURL      string
	FinalURL          string
	FetchTime         time.Time
	LighthouseVersion string
	UserAgent         string
	Categories        []CategoryScore
	FailingAudits     []AuditResult
}

// CategoryScore is a category's score on a 0-100 scale. Score is nil when
// the category could not be scored.
type CategoryScore struct {
	ID    string
	Title string
	Score *int
}

// AuditResult is an audit that scored below 1.
type AuditResult struct {
	ID           string
	Title        string
	DisplayValue string
	Score        float64
}

type lhrDoc struct {
	RequestedURL      string `json:"requestedUrl"`
	FinalURL          string `json:"finalUrl"`
	FinalDisplayedURL string `json:"finalDisplayedUrl"`
	FetchTime         string `json:"fetchTime"`
	LighthouseVersion string `json:"lighthouseVersion"`
	UserAgent         string `json:"userAgent"`
	Categories        map[string]struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Score *float64 `json:"score"`
	} `json:"categories"`
	Audits map[string]struct {
		ID               string   `json:"id"`
		Title            string   `json:"title"`
		Score            *float64 `json:"score"`
		ScoreDisplayMode string   `json:"scoreDisplayMode"`
		DisplayValue     string   `json:"displayValue"`
	} `json:"audits"`
}

// categoryOrder is the order Lighthouse itself presents categories in.
var categoryOrder = map[string]int{
	"performance":    0,
	"accessibility":  1,
	"best-practices": 2,
	"seo":            3,
	"pwa":            4,
}

// Summarize decodes doc into a Summary. Only malformed JSON is an error;
// missing fields are left at their zero values.
func Summarize(doc json.RawMessage) (*Summary, error) {
	var lhr lhrDoc
	if err := json.Unmarshal(doc, &lhr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "decode result")
	}

	s := &Summary{
		RequestedURL:      lhr.RequestedURL,
		FinalURL:          lhr.FinalURL,
		LighthouseVersion: lhr.LighthouseVersion,
		UserAgent:         lhr.UserAgent,
	}
	// fetchTime is informational; an unparseable value is left zero.
	if t, err := time.Parse(time.RFC3339Nano, lhr.FetchTime); err == nil {
		s.FetchTime = t
	}
	if s.FinalURL == "" {
		s.FinalURL = lhr.FinalDisplayedURL
	}

	for key, c := range lhr.Categories {
		cs := CategoryScore{ID: c.ID, Title: c.Title}
		if cs.ID == "" {
			cs.ID = key
		}
		if c.Score != nil {
			v := int(math.Round(*c.Score * 100))
			cs.Score = &v
		}
		s.Categories = append(s.Categories, cs)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		oi, iok := categoryOrder[s.Categories[i].ID]
		oj, jok := categoryOrder[s.Categories[j].ID]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return s.Categories[i].ID < s.Categories[j].ID
	})

	for key, a := range lhr.Audits {
		if a.Score == nil || *a.Score >= 1 {
			continue
		}
		if a.ScoreDisplayMode == "informative" || a.ScoreDisplayMode == "notApplicable" || a.ScoreDisplayMode == "manual" {
			continue
		}
		ar := AuditResult{ID: a.ID, Title: a.Title, DisplayValue: a.DisplayValue, Score: *a.Score}
		if ar.ID == "" {
			ar.ID = key
		}
		s.FailingAudits = append(s.FailingAudits, ar)
	}
	sort.Slice(s.FailingAudits, func(i, j int) bool {
		if s.FailingAudits[i].Score != s.FailingAudits[j].Score {
			return s.FailingAudits[i].Score < s.FailingAudits[j].Score
		}
		return s.FailingAudits[i].ID < s.FailingAudits[j].ID
	})

	return s, nil
}
