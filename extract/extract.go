// Package extract pulls the page title and teaser quote out of a Markdown
// document so they can feed social preview metadata (OpenGraph tags, RSS
// descriptions, link cards).
//
// A document is expected to open with a front-matter block bounded by "---"
// lines, followed by a body in which a literal "<!--more-->" marker separates
// the teaser from the rest of the article. The package is purely functional:
// it performs no I/O and holds no state, so documents can be processed
// concurrently without coordination.
package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel tokens. Every consumer in the repository (server, static builder,
// content importer) shares these definitions so extraction results never
// drift between call sites.
const (
	// Delimiter bounds the front-matter block, alone on a line.
	Delimiter = "---"
	// Marker separates the teaser from the rest of the body.
	Marker = "<!--more-->"
)

// Result is the extracted (title, teaser) pair. Teaser never contains the
// marker or a front-matter delimiter line; Title never contains the "title:"
// field prefix.
type Result struct {
	Title  string
	Teaser string
}

// MissingFieldError reports a front-matter field that is absent from the
// document. Callers choose a fallback (site default) or fail the render.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("extract: front-matter field %q not found", e.Field)
}

// ErrMissingMarker is returned when the body contains no teaser boundary.
var ErrMissingMarker = errors.New("extract: teaser marker " + Marker + " not found")

// Extract returns both the title and the teaser for doc. It fails with a
// *MissingFieldError if the front-matter has no title line, or with
// ErrMissingMarker if the body has no teaser boundary.
func Extract(doc string) (Result, error) {
	title, err := Title(doc)
	if err != nil {
		return Result{}, err
	}
	teaser, err := Teaser(doc)
	if err != nil {
		return Result{}, err
	}
	return Result{Title: title, Teaser: teaser}, nil
}

// Title returns the value of the first "title:" line inside the front-matter
// block: optional leading whitespace, the literal prefix, at least one space
// or tab, then the remainder of the line, trimmed. Lines that merely look
// like a title field elsewhere in the body (a code sample, say) are never
// considered. A missing field is an error, not an empty string — an empty
// title would silently corrupt downstream metadata.
func Title(doc string) (string, error) {
	front, _ := Split(doc)
	for _, line := range strings.Split(front, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), "title:")
		if !ok || rest == "" {
			continue
		}
		if rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return strings.TrimSpace(rest), nil
	}
	return "", &MissingFieldError{Field: "title"}
}

// Teaser strips the front-matter block and returns the body text preceding
// the first teaser marker, with leading and trailing blank lines and
// whitespace removed. Internal line breaks are preserved; collapsing them is
// the consumer's business. A whitespace-only teaser region is legitimate and
// yields "". A body with no marker fails with ErrMissingMarker.
func Teaser(doc string) (string, error) {
	_, body := Split(doc)
	idx := strings.Index(body, Marker)
	if idx < 0 {
		return "", ErrMissingMarker
	}
	return strings.TrimSpace(body[:idx]), nil
}

// Split separates doc into its front-matter block (delimiter lines removed)
// and body. The opening delimiter must be the first non-empty line of the
// document; a delimiter-like line appearing later in the body is ordinary
// content. A document without a front-matter block — or with an unterminated
// one — is treated as body-only: Split returns an empty front block and the
// whole document as body.
//
// This is a line scanner rather than a document-spanning regex: the states
// (before front-matter, inside it, in the body) stay explicit and there is
// no backtracking over arbitrary content.
func Split(doc string) (front, body string) {
	lines := strings.Split(doc, "\n")

	// Find the opening delimiter, skipping leading blank lines only.
	open := -1
	for i, line := range lines {
		switch strings.TrimRight(line, " \t\r") {
		case "":
			continue
		case Delimiter:
			open = i
		}
		break
	}
	if open < 0 {
		return "", doc
	}

	for i := open + 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") == Delimiter {
			return strings.Join(lines[open+1:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}

	// Opening delimiter with no closing one: nothing we can safely call
	// front-matter, so hand the whole document back as body.
	return "", doc
}
