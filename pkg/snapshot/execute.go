package snapshot

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"sourcepack/pkg/gitinfo"
)

// Run executes the full snapshot process: validate the ruleset, traverse
// the project tree, collect git metadata, and write the artifact. It
// returns the absolute artifact path.
//
// Only configuration-time failures are fatal; per-file failures during
// traversal and assembly are logged and recovered locally.
func Run(args Arguments, rules *Ruleset, provider gitinfo.Provider, logger *zap.Logger) (string, error) {
	start := time.Now()
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := rules.Compile(); err != nil {
		return "", fmt.Errorf("invalid ruleset: %w", err)
	}

	root := args.ProjectRoot
	if root == "" {
		root = DetectProjectRoot(logger)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	rootInfo, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("project root does not exist: %w", err)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf("project root is not a directory: %s", absRoot)
	}

	output := args.Output
	if output == "" {
		output = DefaultOutputPath(absRoot, start)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	logger.Info("Starting snapshot",
		zap.String("root", absRoot),
		zap.String("output", absOutput))

	classifier, err := NewClassifier(rules)
	if err != nil {
		return "", err
	}
	cache := NewStatCache(logger)
	walker := NewWalker(absRoot, classifier, cache, logger)
	walker.SetVerbose(args.Verbose)
	walker.ExcludeOutput(absOutput)
	if args.RespectGitignore {
		if matcher, ok := LoadGitignore(absRoot, logger); ok {
			walker.UseGitignore(matcher)
		}
	}

	res, err := walker.Walk()
	if err != nil {
		return "", fmt.Errorf("traversal failed: %w", err)
	}

	info := gitinfo.Unavailable()
	if provider != nil {
		info = provider.Get()
	}

	outFile, err := os.Create(absOutput)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	writer := bufio.NewWriter(outFile)
	assembler := NewAssembler(absRoot, args.ListEnvKeys, logger)
	stats, err := assembler.Assemble(writer, res, info, start)
	if err == nil {
		err = writer.Flush()
	}
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	logger.Info("Snapshot complete",
		zap.String("output", absOutput),
		zap.Int("totalFiles", stats.TotalFiles),
		zap.Int("embeddedFiles", stats.EmbeddedFiles),
		zap.Int("sensitiveFiles", stats.Sensitive),
		zap.Int("excludedFiles", stats.Excluded),
		zap.Duration("elapsed", time.Since(start)))
	return absOutput, nil
}

// DetectProjectRoot searches upward from the working directory for common
// project markers and returns the first directory containing one, falling
// back to the working directory itself.
func DetectProjectRoot(logger *zap.Logger) string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	current := cwd
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				if logger != nil {
					logger.Debug("Project root detected", zap.String("root", current), zap.String("marker", marker))
				}
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return cwd
		}
		current = parent
	}
}

// DefaultOutputPath derives the artifact path from the root name and the
// run timestamp, e.g. myproject_20260827_1502_merged_sources.txt.
func DefaultOutputPath(root string, t time.Time) string {
	name := fmt.Sprintf("%s_%s_merged_sources.txt", filepath.Base(root), t.Format("20060102_1504"))
	return filepath.Join(root, name)
}
