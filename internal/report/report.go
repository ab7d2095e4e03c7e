// Package report renders pipeline progress, results and failures as the
// plain-text lines printed by the wordfreq command.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analyzer"
	apperrors "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/errors"
)

const (
	separatorWidth = 30

	hintCheckURL = "Please check the URL and try again."
	hintNotABook = "Please check that the URL points to a Project Gutenberg plain-text ebook and try again."
)

var progressLines = map[analyzer.Stage]string{
	analyzer.StageFetching:    "Downloading text...",
	analyzer.StageNormalizing: "Cleaning text...",
	analyzer.StageTokenizing:  "Extracting words...",
	analyzer.StageCounting:    "Counting word frequencies...",
}

// Progress writes the progress line for stage. Stages without one are
// ignored.
func Progress(w io.Writer, stage analyzer.Stage) {
	if line, ok := progressLines[stage]; ok {
		fmt.Fprintln(w, line)
	}
}

// Write renders a successful result.
func Write(w io.Writer, res *analyzer.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nTop %d most frequent words:\n", res.Requested)
	b.WriteString(strings.Repeat("-", separatorWidth))
	b.WriteByte('\n')
	for _, e := range res.Top {
		fmt.Fprintf(&b, "%s: %d\n", e.Token, e.Count)
	}
	fmt.Fprintf(&b, "\nTotal unique words: %d\n", res.Unique)
	fmt.Fprintf(&b, "Total words analyzed: %d\n", res.Total)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteError renders a failure as a message line and a remediation hint
// chosen by error kind.
func WriteError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "An error occurred: %v\n%s\n", err, Hint(err))
	return werr
}

// Hint returns the remediation line for err.
func Hint(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindMarkerNotFound:
		return hintNotABook
	default:
		return hintCheckURL
	}
}
