package snapshot

import (
	"fmt"
)

// Ruleset is the immutable rule configuration for one run: force-include
// names, excluded directory names, excluded file patterns, sensitive file
// patterns, and the maximum embeddable file size. It must be compiled once
// via Compile before use and never mutated afterwards.
type Ruleset struct {
	ForceInclude []string // Exact file names always embedded, overriding every exclusion.
	ExcludeDirs  []string // Exact directory names pruned from traversal.
	ExcludeFiles []string // Glob patterns for files dropped from the snapshot.
	Sensitive    []string // Glob patterns (case-insensitive) for redacted files.
	MaxFileSize  int64    // Maximum size in bytes of an embeddable file.

	forceInclude map[string]struct{}
	excludeDirs  map[string]struct{}
	excludeFiles *PatternSet
	sensitive    *PatternSet
	compiled     bool
}

// DefaultRuleset returns the stock rule configuration.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		ForceInclude: append([]string(nil), defaultForceInclude...),
		ExcludeDirs:  append([]string(nil), defaultExcludeDirs...),
		ExcludeFiles: append([]string(nil), defaultExcludeFiles...),
		Sensitive:    append([]string(nil), defaultSensitivePatterns...),
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// Compile validates the ruleset and builds its lookup sets and pattern
// matchers. A validation failure here is fatal for the run: nothing is
// traversed and nothing is written.
func (r *Ruleset) Compile() error {
	if r.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", r.MaxFileSize)
	}

	r.forceInclude = make(map[string]struct{}, len(r.ForceInclude))
	for _, name := range r.ForceInclude {
		r.forceInclude[name] = struct{}{}
	}
	r.excludeDirs = make(map[string]struct{}, len(r.ExcludeDirs))
	for _, name := range r.ExcludeDirs {
		r.excludeDirs[name] = struct{}{}
	}

	var err error
	if r.excludeFiles, err = CompilePatterns(r.ExcludeFiles, false); err != nil {
		return fmt.Errorf("exclude patterns: %w", err)
	}
	if r.sensitive, err = CompilePatterns(r.Sensitive, true); err != nil {
		return fmt.Errorf("sensitive patterns: %w", err)
	}

	r.compiled = true
	return nil
}

// Arguments holds the per-run options for the snapshot process.
type Arguments struct {
	ProjectRoot      string // Root directory to snapshot; detected upward from cwd when empty.
	Output           string // Artifact path; derived from the root name and timestamp when empty.
	ListEnvKeys      bool   // Render redacted key names for env-style sensitive files.
	RespectGitignore bool   // Additionally exclude files matched by the project .gitignore.
	Verbose          bool   // Enables detailed logging of skipped entries.
}
