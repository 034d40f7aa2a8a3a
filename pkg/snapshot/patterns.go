package snapshot

import (
	"fmt"
	"regexp"
	"strings"
)

// Precompiled regular expressions used when translating glob patterns.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
	singleStarPattern         = regexp.MustCompile(`\*`)
)

// PatternSet holds a list of glob patterns compiled to anchored regular
// expressions. Patterns without a slash match any path segment, so a bare
// pattern like "*.log" matches both "debug.log" and "sub/dir/debug.log".
// Patterns containing a slash are anchored at the project root.
type PatternSet struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re  *regexp.Regexp
	raw string
}

// CompilePatterns translates glob patterns into a PatternSet. Matching is
// case-insensitive when insensitive is true. An invalid pattern is a
// configuration error and fails the whole compilation.
func CompilePatterns(globs []string, insensitive bool) (*PatternSet, error) {
	ps := &PatternSet{patterns: make([]compiledPattern, 0, len(globs))}
	for _, glob := range globs {
		trimmed := strings.TrimSpace(glob)
		if trimmed == "" {
			continue
		}
		expr := globToRegex(trimmed)
		if insensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", glob, err)
		}
		ps.patterns = append(ps.patterns, compiledPattern{re: re, raw: trimmed})
	}
	return ps, nil
}

// Matches reports whether the slash-separated relative path matches any
// pattern in the set.
func (ps *PatternSet) Matches(relPath string) bool {
	_, ok := ps.Match(relPath)
	return ok
}

// Match returns the first pattern the path matches, for diagnostics.
func (ps *PatternSet) Match(relPath string) (string, bool) {
	for _, p := range ps.patterns {
		if p.re.MatchString(relPath) {
			return p.raw, true
		}
	}
	return "", false
}

// Len returns the number of compiled patterns.
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// Placeholders keep the '**' expansions out of reach of the single-star
// pass; they are expanded to their regex forms last.
const (
	holderMiddle   = "\x00M\x00"
	holderTrailing = "\x00T\x00"
	holderLeading  = "\x00L\x00"
)

// globToRegex converts one glob pattern into an anchored regular expression
// with gitignore-like semantics: '*' stays within a path segment, '?'
// matches a single character, and '**' crosses segment boundaries.
func globToRegex(glob string) string {
	pattern := escapeSpecialChars(glob)

	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, holderMiddle)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, holderTrailing)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, holderLeading)

	pattern = singleStarPattern.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)

	pattern = strings.ReplaceAll(pattern, holderMiddle, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, holderTrailing, `(/.*)?`)
	pattern = strings.ReplaceAll(pattern, holderLeading, `(.*/)?`)

	if strings.Contains(glob, "/") {
		// Rooted pattern: anchored at the project root.
		return "^" + strings.TrimPrefix(pattern, "/") + `(/.*)?$`
	}
	// Bare pattern: may match any path segment, including a directory
	// segment with descendants after it.
	return `^(|.*/)` + pattern + `(/.*)?$`
}

// escapeSpecialChars escapes regex metacharacters except '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	const specialChars = `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}
