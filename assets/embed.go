// Package assets embeds the default word lists used when no list files are
// configured.
package assets

import (
	"embed"
	"io"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// Answers opens the embedded answer list.
func Answers() (io.ReadCloser, error) {
	return FS.Open("answers.txt")
}

// Allowed opens the embedded guess-only list.
func Allowed() (io.ReadCloser, error) {
	return FS.Open("allowed.txt")
}
