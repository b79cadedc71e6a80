// Package location derives a place name from a generated summary.
package location

import "regexp"

// Unknown is returned when a summary contains no capitalized word run.
const Unknown = "Unknown"

// One or more space-separated capitalized words, e.g. "Ottawa" or
// "Thunder Bay".
var cityPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\b`)

// ExtractCity returns the first capitalized word run anywhere in summary, or
// Unknown. It relies on the summarizer leading with the city; when the model
// ignores that instruction the first run may be a person or an organisation.
func ExtractCity(summary string) string {
	if match := cityPattern.FindString(summary); match != "" {
		return match
	}
	return Unknown
}
