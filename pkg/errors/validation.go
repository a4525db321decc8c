package errors

import (
	"net/url"
	"regexp"
	"unicode"
)

// reportIDRegex matches the identifiers the artifact store issues.
var reportIDRegex = regexp.MustCompile(`^lhr-\d+$`)

// ValidateReportID checks that id has the form lhr-<digits>.
// IDs end up in file names, so anything else is rejected outright.
func ValidateReportID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidReport, "report ID cannot be empty")
	}
	if !reportIDRegex.MatchString(id) {
		return New(ErrCodeInvalidReport, "invalid report ID %q (want lhr-<digits>)", id)
	}
	return nil
}

// ValidatePath validates a user-supplied artifact location.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL checks that rawURL is an absolute http or https URL with a
// host. Tested URLs that fail it are not turned into report links.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}
