package snapshot

import (
	"errors"
	"path"
)

// Classifier is the pure decision engine of the snapshot. Given a relative
// path and its stat entry it assigns a Classification by evaluating the
// ruleset in a fixed order, each step short-circuiting:
//
//  1. base name in the force-include set  -> ForceIncluded
//  2. name or path matches a sensitive pattern -> Sensitive
//  3. size exceeds the configured maximum -> Excluded
//  4. path matches an excluded glob pattern -> Excluded
//  5. otherwise -> Regular
//
// The force-include check precedes everything else, including the size
// limit, so a force-included file can never be excluded.
type Classifier struct {
	rules *Ruleset
}

// NewClassifier returns a Classifier over a compiled ruleset.
func NewClassifier(rules *Ruleset) (*Classifier, error) {
	if !rules.compiled {
		return nil, errors.New("ruleset must be compiled before use")
	}
	return &Classifier{rules: rules}, nil
}

// Classify assigns a classification to the file at the slash-separated
// relative path with the given stat entry.
func (c *Classifier) Classify(relPath string, stat StatEntry) Classification {
	name := path.Base(relPath)

	if _, ok := c.rules.forceInclude[name]; ok {
		return ClassForceIncluded
	}
	if c.rules.sensitive.Matches(relPath) {
		return ClassSensitive
	}
	if stat.Size > c.rules.MaxFileSize {
		return ClassExcluded
	}
	if c.rules.excludeFiles.Matches(relPath) {
		return ClassExcluded
	}
	return ClassRegular
}

// IsExcludedDir reports whether a directory name is pruned from traversal.
// The check is exact-name membership only, never prefix or pattern based,
// so dotted but meaningful directories such as .github survive unless
// explicitly listed.
func (c *Classifier) IsExcludedDir(name string) bool {
	_, ok := c.rules.excludeDirs[name]
	return ok
}
