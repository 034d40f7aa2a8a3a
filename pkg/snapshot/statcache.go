package snapshot

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// StatFunc is the underlying metadata lookup used by the StatCache. It is
// os.Stat in production and an instrumented stub in tests.
type StatFunc func(path string) (os.FileInfo, error)

// StatCache memoizes filesystem metadata lookups for the lifetime of one
// run. Each path is stat'ed at most once; failures are cached too, so a
// path that could not be stat'ed is not retried. The cache is owned by a
// single run and is not safe for concurrent use.
type StatCache struct {
	statFn  StatFunc
	entries map[string]statResult
	logger  *zap.Logger
}

type statResult struct {
	entry StatEntry
	err   error
}

// NewStatCache returns a StatCache backed by os.Stat.
func NewStatCache(logger *zap.Logger) *StatCache {
	return newStatCache(os.Stat, logger)
}

func newStatCache(fn StatFunc, logger *zap.Logger) *StatCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatCache{
		statFn:  fn,
		entries: make(map[string]statResult),
		logger:  logger,
	}
}

// Get returns the StatEntry for path, performing the underlying lookup on
// first request only. A failed lookup is logged once and returned as an
// error; callers treat it as "skip this path".
func (sc *StatCache) Get(path string) (StatEntry, error) {
	if res, ok := sc.entries[path]; ok {
		return res.entry, res.err
	}

	info, err := sc.statFn(path)
	if err != nil {
		wrapped := fmt.Errorf("stat %s: %w", path, err)
		sc.entries[path] = statResult{err: wrapped}
		sc.logger.Warn("Cannot stat path, skipping", zap.String("path", path), zap.Error(err))
		return StatEntry{}, wrapped
	}

	entry := StatEntry{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
	sc.entries[path] = statResult{entry: entry}
	return entry, nil
}

// Len returns the number of cached paths, failures included.
func (sc *StatCache) Len() int {
	return len(sc.entries)
}
