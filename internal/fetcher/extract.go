package fetcher

import (
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/errors"
)

const (
	StartMarker = "*** START OF THE PROJECT GUTENBERG EBOOK"
	EndMarker   = "*** END OF THE PROJECT GUTENBERG EBOOK"
)

// ExtractBody returns the trimmed text between the Gutenberg start and end
// markers. The body begins on the line after the start marker; if that
// marker is on the last line there is no body and the end marker is reported
// missing.
func ExtractBody(text string) (string, error) {
	start := strings.Index(text, StartMarker)
	if start == -1 {
		return "", apperrors.MarkerNotFound("start", StartMarker)
	}
	nl := strings.IndexByte(text[start:], '\n')
	if nl == -1 {
		return "", apperrors.MarkerNotFound("end", EndMarker)
	}
	start += nl + 1

	end := strings.Index(text[start:], EndMarker)
	if end == -1 {
		return "", apperrors.MarkerNotFound("end", EndMarker)
	}
	return strings.TrimSpace(text[start : start+end]), nil
}
