package artifacts

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"
)

const (
	// AssertionResultsName is the file holding the assertion results array.
	AssertionResultsName = "assertion-results.json"

	// LinksName is the file holding the URL link map.
	LinksName = "links.json"

	idPrefix = "lhr-"
)

var (
	rawResultPattern = regexp.MustCompile(`^lhr-\d+\.json$`)
	reportPattern    = regexp.MustCompile(`^lhr-\d+\.html$`)
)

// IsRawResultName reports whether name is a stored raw result.
func IsRawResultName(name string) bool { return rawResultPattern.MatchString(name) }

// IsReportName reports whether name is a stored rendered report.
func IsReportName(name string) bool { return reportPattern.MatchString(name) }

// RawResultName returns the raw result file name for id.
func RawResultName(id string) string { return id + ".json" }

// ReportName returns the rendered report file name for id.
func ReportName(id string) string { return id + ".html" }

// FormatID builds the identifier for a millisecond timestamp.
func FormatID(ms int64) string { return idPrefix + strconv.FormatInt(ms, 10) }

// IDFromName returns the identifier of a raw result or report file name.
// The digits are kept as written, so "lhr-007.json" yields "lhr-007".
func IDFromName(name string) (string, bool) {
	switch {
	case IsRawResultName(name):
		return strings.TrimSuffix(name, ".json"), true
	case IsReportName(name):
		return strings.TrimSuffix(name, ".html"), true
	}
	return "", false
}

// CompareIDs orders identifiers by timestamp, oldest first. Digits are
// compared as decimal strings so values beyond int64 still order
// correctly; ties (such as "lhr-7" and "lhr-007") fall back to the full
// string.
func CompareIDs(a, b string) int {
	da := strings.TrimLeft(strings.TrimPrefix(a, idPrefix), "0")
	db := strings.TrimLeft(strings.TrimPrefix(b, idPrefix), "0")
	if len(da) != len(db) {
		return cmp.Compare(len(da), len(db))
	}
	if c := strings.Compare(da, db); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
