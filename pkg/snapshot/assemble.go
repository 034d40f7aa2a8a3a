package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"sourcepack/pkg/gitinfo"
)

const (
	sectionRule = "================================================================================"
	fileRule    = "--------------------------------------------------------------------------------"
	timeLayout  = "2006-01-02 15:04:05"
)

// Assembler renders the snapshot artifact from the walk result: header,
// directory tree, embedded file bodies in traversal order, sensitive file
// summaries, and the statistics block, in that order. Given identical
// inputs the output is deterministic apart from the supplied timestamp.
type Assembler struct {
	root        string
	listEnvKeys bool
	readFile    func(string) ([]byte, error)
	logger      *zap.Logger
}

// NewAssembler returns an Assembler for the project at root.
func NewAssembler(root string, listEnvKeys bool, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		root:        root,
		listEnvKeys: listEnvKeys,
		readFile:    os.ReadFile,
		logger:      logger,
	}
}

// reportWriter folds write errors so section renderers stay linear; the
// first error wins and suppresses all later writes.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err == nil {
		_, rw.err = fmt.Fprintf(rw.w, format, args...)
	}
}

// Assemble renders the artifact to w and returns the aggregate statistics.
// Per-file read failures are recorded as unreadable sections and never
// abort assembly; only writer errors do.
func (a *Assembler) Assemble(w io.Writer, res *WalkResult, info gitinfo.Info, generated time.Time) (Stats, error) {
	rw := &reportWriter{w: w}
	stats := Stats{
		TotalFiles: len(res.Records) + res.Excluded,
		Excluded:   res.Excluded,
		Languages:  make(map[string]int),
	}

	a.writeHeader(rw, info, generated)
	a.writeTree(rw, res.Tree)

	// Embedded bodies first, sensitive summaries after, each group in
	// traversal order.
	rw.printf("%s\nSOURCE FILES\n%s\n\n", sectionRule, sectionRule)
	var sensitive []FileRecord
	for _, rec := range res.Records {
		if rec.Classification == ClassSensitive {
			sensitive = append(sensitive, rec)
			continue
		}
		a.writeRegularFile(rw, rec, &stats)
	}
	if len(sensitive) > 0 {
		rw.printf("\n%s\nSENSITIVE FILES\n%s\n", sectionRule, sectionRule)
		for _, rec := range sensitive {
			a.writeSensitiveFile(rw, rec, &stats)
		}
	}

	a.writeStatistics(rw, generated, &stats)
	return stats, rw.err
}

func (a *Assembler) writeHeader(rw *reportWriter, info gitinfo.Info, generated time.Time) {
	rw.printf("%s\nPROJECT SOURCE CODE CONSOLIDATION\n%s\n\n", sectionRule, sectionRule)
	rw.printf("Project:          %s\n", filepath.Base(a.root))
	rw.printf("Generated:        %s\n", generated.Format(timeLayout))
	if info.Available {
		rw.printf("Git Branch:       %s\n", info.Branch)
		rw.printf("Git Commit:       %s\n", info.Commit)
		rw.printf("Commit Date:      %s\n", info.CommitDate)
		rw.printf("Git Remote:       %s\n", info.Remote)
	} else {
		rw.printf("Git:              unavailable\n")
	}
	rw.printf("Project Root:     %s\n\n", a.root)
}

func (a *Assembler) writeTree(rw *reportWriter, tree *DirectoryNode) {
	rw.printf("%s\nPROJECT STRUCTURE\n%s\n\n", sectionRule, sectionRule)
	rw.printf("%s\n", tree.Render())
}

func (a *Assembler) writeRegularFile(rw *reportWriter, rec FileRecord, stats *Stats) {
	content, err := a.readFile(filepath.Join(a.root, filepath.FromSlash(rec.Path)))
	if err != nil {
		a.logger.Warn("Cannot read file, recording as unreadable",
			zap.String("path", rec.Path), zap.Error(err))
		a.writeUnreadableFile(rw, rec, "read error", stats)
		return
	}
	if !isTextContent(content) {
		a.logger.Warn("File content is not embeddable text, recording as unreadable",
			zap.String("path", rec.Path))
		a.writeUnreadableFile(rw, rec, "binary or undecodable content", stats)
		return
	}

	language := LanguageFor(rec.Name)
	lines := countLines(content)

	stats.EmbeddedFiles++
	if rec.Classification == ClassForceIncluded {
		stats.ForceIncluded++
	}
	stats.TotalLines += lines
	stats.TotalBytes += rec.Size
	stats.Languages[language]++

	rw.printf("\n%s\nFILE: %s\n%s\n", fileRule, rec.Path, fileRule)
	rw.printf("Location:   %s\n", rec.Path)
	rw.printf("Language:   %s\n", language)
	rw.printf("Lines:      %d\n", lines)
	rw.printf("Size:       %d bytes\n%s\n\n", rec.Size, fileRule)
	rw.printf("%s", content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		rw.printf("\n")
	}
	rw.printf("\n")
}

func (a *Assembler) writeUnreadableFile(rw *reportWriter, rec FileRecord, reason string, stats *Stats) {
	stats.Unreadable++
	rw.printf("\n%s\nFILE: %s\n%s\n", fileRule, rec.Path, fileRule)
	rw.printf("Type:       UNREADABLE (content not embedded)\n")
	rw.printf("Location:   %s\n", rec.Path)
	rw.printf("Size:       %d bytes\n", rec.Size)
	rw.printf("Reason:     %s\n\n", reason)
}

func (a *Assembler) writeSensitiveFile(rw *reportWriter, rec FileRecord, stats *Stats) {
	stats.Sensitive++
	rw.printf("\n%s\nFILE: %s\n%s\n", fileRule, rec.Path, fileRule)
	rw.printf("Type:      SENSITIVE (content not included)\n")
	rw.printf("Location:  %s\n", rec.Path)
	rw.printf("Size:      %d bytes\n", rec.Size)
	rw.printf("Language:  %s\n", LanguageFor(rec.Name))

	if a.listEnvKeys && isEnvName(rec.Name) {
		rw.printf("\nEnvironment Variables:\n")
		content, err := a.readFile(filepath.Join(a.root, filepath.FromSlash(rec.Path)))
		if err != nil {
			a.logger.Warn("Cannot read sensitive file for key listing",
				zap.String("path", rec.Path), zap.Error(err))
			rw.printf("  <unable to read>\n")
		} else {
			for _, key := range ExtractEnvKeys(content) {
				rw.printf("  %s\n", RedactKey(key))
			}
		}
	}

	rw.printf("\nNOTE: This is a sensitive file. Content is not included for security.\n\n")
}

// isEnvName reports whether a base name is an env-style key=value file:
// ".env", a ".env.*" variant, or a "*.env" suffix like "prod.env".
func isEnvName(name string) bool {
	return strings.HasPrefix(name, ".env") || strings.HasSuffix(name, ".env")
}

func (a *Assembler) writeStatistics(rw *reportWriter, generated time.Time, stats *Stats) {
	rw.printf("%s\nCONSOLIDATION STATISTICS\n%s\n\n", sectionRule, sectionRule)
	rw.printf("Completion Time:  %s\n", generated.Format(timeLayout))
	rw.printf("Total Files:      %d\n", stats.TotalFiles)
	rw.printf("Embedded Files:   %d\n", stats.EmbeddedFiles)
	rw.printf("Force Included:   %d\n", stats.ForceIncluded)
	rw.printf("Sensitive Files:  %d\n", stats.Sensitive)
	rw.printf("Excluded Files:   %d\n", stats.Excluded)
	rw.printf("Unreadable Files: %d\n", stats.Unreadable)
	rw.printf("Total Lines:      %d\n", stats.TotalLines)
	rw.printf("Total Bytes:      %d\n", stats.TotalBytes)

	rw.printf("\nLanguage Distribution:\n")
	type langCount struct {
		name  string
		count int
	}
	langs := make([]langCount, 0, len(stats.Languages))
	for name, count := range stats.Languages {
		langs = append(langs, langCount{name, count})
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].count != langs[j].count {
			return langs[i].count > langs[j].count
		}
		return langs[i].name < langs[j].name
	})
	for _, lc := range langs {
		rw.printf("  %-20s %4d files\n", lc.name, lc.count)
	}

	rw.printf("\n%s\nEND OF CONSOLIDATION\n%s\n", sectionRule, sectionRule)
}
