package snapshot

import (
	"bytes"
	"unicode/utf8"
)

// textSniffLen is how many leading bytes are inspected for binary markers.
const textSniffLen = 512

// isTextContent reports whether content can be embedded as text. Files with
// null bytes, invalid UTF-8, or a high ratio of control characters in the
// leading bytes are treated as binary and reported as unreadable instead of
// being embedded.
func isTextContent(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textSniffLen {
		sample = sample[:textSniffLen]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}

	control := 0
	for _, b := range sample {
		if b < 32 && b != '\n' && b != '\r' && b != '\t' {
			control++
		}
	}
	if float64(control)/float64(len(sample)) > 0.3 {
		return false
	}

	return utf8.Valid(content)
}

// countLines returns the number of lines in content, counting a trailing
// line without a newline.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
