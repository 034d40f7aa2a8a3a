package snapshot

import (
	"os"
	"path"
	"path/filepath"
	"sort"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// Walker traverses the project tree depth-first, consulting the Classifier
// to prune excluded directories and route files, and produces the ordered
// record list plus the DirectoryNode index used for rendering.
//
// Ordering within each directory is directories first, then files, each
// sorted lexicographically by name. Symbolic links to directories are not
// descended into; a symlink to a regular file is recorded with its target's
// stat entry.
type Walker struct {
	root       string
	classifier *Classifier
	stats      *StatCache
	ignore     gitignore.IgnoreMatcher
	skipOutput string
	logger     *zap.Logger
	verbose    bool
}

// WalkResult carries the outcome of one traversal.
type WalkResult struct {
	Records  []FileRecord
	Tree     *DirectoryNode
	Excluded int // Files dropped by classification, stat failure, or gitignore.
}

// NewWalker returns a Walker over root.
func NewWalker(root string, classifier *Classifier, stats *StatCache, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		root:       filepath.Clean(root),
		classifier: classifier,
		stats:      stats,
		logger:     logger,
	}
}

// SetVerbose enables per-entry skip logging.
func (w *Walker) SetVerbose(v bool) { w.verbose = v }

// ExcludeOutput marks the artifact's own absolute path so a snapshot never
// embeds itself, whatever the artifact is named.
func (w *Walker) ExcludeOutput(absPath string) {
	w.skipOutput = filepath.Clean(absPath)
}

// UseGitignore adds a .gitignore matcher as an extra exclusion source.
// Force-included names still win over it.
func (w *Walker) UseGitignore(m gitignore.IgnoreMatcher) {
	w.ignore = m
}

// Walk runs the traversal. Per-entry failures (unreadable directories,
// stat failures) are logged and skipped; they never abort the walk.
func (w *Walker) Walk() (*WalkResult, error) {
	res := &WalkResult{
		Tree: &DirectoryNode{Name: filepath.Base(w.root)},
	}
	w.walkDir(w.root, "", res.Tree, res)
	return res, nil
}

func (w *Walker) walkDir(dir, rel string, node *DirectoryNode, res *WalkResult) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("Cannot read directory, skipping subtree", zap.String("dir", dir), zap.Error(err))
		return
	}

	// Directories before files, each sorted by name, so the record order
	// and the rendered tree stay in lockstep.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)
		childRel := path.Join(rel, name)

		if entry.IsDir() {
			if w.classifier.IsExcludedDir(name) {
				if w.verbose {
					w.logger.Debug("Pruning excluded directory", zap.String("dir", childRel))
				}
				continue
			}
			if w.ignore != nil && w.ignore.Match(full, true) {
				if w.verbose {
					w.logger.Debug("Pruning gitignored directory", zap.String("dir", childRel))
				}
				continue
			}
			child := &DirectoryNode{Name: name}
			node.Dirs = append(node.Dirs, child)
			w.walkDir(full, childRel, child, res)
			continue
		}

		stat, err := w.stats.Get(full)
		if err != nil {
			res.Excluded++
			continue
		}
		if stat.IsDir {
			// Symlink pointing at a directory: never followed, prevents
			// traversal cycles.
			if w.verbose {
				w.logger.Debug("Skipping symlinked directory", zap.String("path", childRel))
			}
			continue
		}
		if w.skipOutput != "" && full == w.skipOutput {
			continue
		}

		cls := w.classifier.Classify(childRel, stat)
		if cls != ClassForceIncluded && w.ignore != nil && w.ignore.Match(full, false) {
			cls = ClassExcluded
		}
		if cls == ClassExcluded {
			res.Excluded++
			if w.verbose {
				w.logger.Debug("Excluding file", zap.String("path", childRel), zap.Int64("size", stat.Size))
			}
			continue
		}

		record := FileRecord{
			Path:           childRel,
			Name:           name,
			Classification: cls,
			Size:           stat.Size,
		}
		res.Records = append(res.Records, record)
		node.Files = append(node.Files, record)
	}
}
