package snapshot

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// LoadGitignore parses the project's root .gitignore into a matcher for the
// optional gitignore-aware exclusion mode. Nested .gitignore files are not
// consulted. A missing or unparsable file disables the mode with a warning.
func LoadGitignore(root string, logger *zap.Logger) (gitignore.IgnoreMatcher, bool) {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	matcher, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		if logger != nil {
			logger.Warn("Cannot parse .gitignore, continuing without it",
				zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	return matcher, true
}
