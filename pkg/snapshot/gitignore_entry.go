package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// EnsureGitignoreEntry appends the artifact pattern to the project's
// .gitignore when it is not already present, so generated snapshots are
// never committed. Failure to update the file is a logged warning, never
// fatal: the snapshot itself does not depend on it.
func EnsureGitignoreEntry(root string, logger *zap.Logger) error {
	path := filepath.Join(root, ".gitignore")

	var content string
	if data, err := os.ReadFile(path); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	if strings.Contains(content, ArtifactPattern) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# Exclude consolidated source files\n%s\n", ArtifactPattern); err != nil {
		return fmt.Errorf("failed to append to .gitignore: %w", err)
	}
	if logger != nil {
		logger.Info("Added artifact pattern to .gitignore", zap.String("pattern", ArtifactPattern))
	}
	return nil
}
