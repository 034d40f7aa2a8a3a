package snapshot

import "time"

// Classification is the tag assigned to a filesystem entry by the Classifier.
// It determines how the assembler treats the entry.
type Classification int

const (
	// ClassRegular marks a normal source file embedded verbatim.
	ClassRegular Classification = iota
	// ClassForceIncluded marks a file embedded regardless of exclusion rules.
	ClassForceIncluded
	// ClassSensitive marks a file whose content is never embedded; only its
	// existence, size, and optionally redacted key names are reported.
	ClassSensitive
	// ClassExcluded marks a file dropped from the snapshot entirely.
	ClassExcluded
)

// String returns the human-readable name of the classification.
func (c Classification) String() string {
	switch c {
	case ClassRegular:
		return "regular"
	case ClassForceIncluded:
		return "force-included"
	case ClassSensitive:
		return "sensitive"
	case ClassExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// FileRecord describes a single classified file discovered during traversal.
// The path is relative to the project root and slash-separated. Size always
// comes from the cached StatEntry, never re-derived.
type FileRecord struct {
	Path           string
	Name           string
	Classification Classification
	Size           int64
}

// StatEntry is the cached result of a filesystem metadata lookup.
type StatEntry struct {
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Stats aggregates the counters rendered in the statistics section.
type Stats struct {
	TotalFiles    int
	EmbeddedFiles int
	ForceIncluded int
	Sensitive     int
	Excluded      int
	Unreadable    int
	TotalLines    int
	TotalBytes    int64
	Languages     map[string]int
}
