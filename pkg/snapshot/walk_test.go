package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestWalker(t *testing.T, root string, cache *StatCache) *Walker {
	t.Helper()
	if cache == nil {
		cache = NewStatCache(nil)
	}
	return NewWalker(root, newTestClassifier(t, nil), cache, nil)
}

func recordPaths(res *WalkResult) []string {
	paths := make([]string, 0, len(res.Records))
	for _, r := range res.Records {
		paths = append(paths, r.Path)
	}
	return paths
}

func TestWalkPrunesExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "src/main.go", "package main\n")
	writeTestFile(t, root, "node_modules/left-pad/index.js", "module.exports = 1\n")
	writeTestFile(t, root, "node_modules/left-pad/sub/deep.js", "x\n")
	writeTestFile(t, root, "node_modules/README.md", "vendored\n")

	calls := make(map[string]int)
	cache := newStatCache(func(p string) (os.FileInfo, error) {
		calls[p]++
		return os.Stat(p)
	}, nil)

	res, err := newTestWalker(t, root, cache).Walk()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range recordPaths(res) {
		if strings.HasPrefix(p, "node_modules/") {
			t.Errorf("record from pruned subtree: %s", p)
		}
	}
	for p := range calls {
		if strings.Contains(p, "node_modules") {
			t.Errorf("stat performed inside pruned subtree: %s", p)
		}
	}
	if strings.Contains(res.Tree.Render(), "node_modules") {
		t.Error("pruned directory appears in tree")
	}
}

func TestWalkKeepsDottedDirs(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, ".github/workflows/ci.yml", "on: push\n")
	writeTestFile(t, root, "main.go", "package main\n")

	res, err := newTestWalker(t, root, nil).Walk()
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, r := range res.Records {
		if r.Path == ".github/workflows/ci.yml" {
			found = true
			if r.Classification != ClassRegular {
				t.Errorf("classification = %v, want ClassRegular", r.Classification)
			}
		}
	}
	if !found {
		t.Fatal(".github/workflows/ci.yml missing from records")
	}

	rendered := res.Tree.Render()
	if !strings.Contains(rendered, ".github/") || !strings.Contains(rendered, "ci.yml") {
		t.Errorf("tree missing .github subtree:\n%s", rendered)
	}
}

func TestWalkOrdering(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "b.go", "package b\n")
	writeTestFile(t, root, "a.go", "package a\n")
	writeTestFile(t, root, "zdir/x.go", "package z\n")
	writeTestFile(t, root, "adir/y.go", "package a\n")

	res, err := newTestWalker(t, root, nil).Walk()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"adir/y.go", "zdir/x.go", "a.go", "b.go"}
	got := recordPaths(res)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record order: got %v, want %v", got, want)
		}
	}
}

func TestWalkExcludesOutputArtifact(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.go", "package main\n")
	writeTestFile(t, root, "snapshot.txt", "previous run\n")
	writeTestFile(t, root, "proj_20260101_0101_merged_sources.txt", "older artifact\n")

	w := newTestWalker(t, root, nil)
	w.ExcludeOutput(filepath.Join(root, "snapshot.txt"))
	res, err := w.Walk()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range recordPaths(res) {
		if p == "snapshot.txt" || strings.Contains(p, "merged_sources") {
			t.Errorf("artifact embedded in snapshot: %s", p)
		}
	}
}

func TestWalkRecordSizesComeFromStat(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "five.go", "12345")
	writeTestFile(t, root, "sub/nine.md", "123456789")

	res, err := newTestWalker(t, root, nil).Walk()
	if err != nil {
		t.Fatal(err)
	}

	wantSizes := map[string]int64{"five.go": 5, "sub/nine.md": 9}
	for _, r := range res.Records {
		if want, ok := wantSizes[r.Path]; ok && r.Size != want {
			t.Errorf("%s: Size = %d, want %d", r.Path, r.Size, want)
		}
	}
}

func TestWalkStatFailureSkipsEntry(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "good.go", "package good\n")
	writeTestFile(t, root, "bad.go", "package bad\n")

	cache := newStatCache(func(p string) (os.FileInfo, error) {
		if strings.HasSuffix(p, "bad.go") {
			return nil, errors.New("permission denied")
		}
		return os.Stat(p)
	}, nil)

	res, err := newTestWalker(t, root, cache).Walk()
	if err != nil {
		t.Fatal(err)
	}

	got := recordPaths(res)
	if len(got) != 1 || got[0] != "good.go" {
		t.Errorf("records = %v, want [good.go]", got)
	}
	if res.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", res.Excluded)
	}
}

func TestWalkRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.go", "package main\n")
	writeTestFile(t, root, "notes.txt", "scratch\n")
	writeTestFile(t, root, "Dockerfile", "FROM scratch\n")
	writeTestFile(t, root, ".gitignore", "notes.txt\nDockerfile\n")

	w := newTestWalker(t, root, nil)
	matcher, ok := LoadGitignore(root, nil)
	if !ok {
		t.Fatal("LoadGitignore failed")
	}
	w.UseGitignore(matcher)

	res, err := w.Walk()
	if err != nil {
		t.Fatal(err)
	}

	byPath := make(map[string]FileRecord)
	for _, r := range res.Records {
		byPath[r.Path] = r
	}
	if _, ok := byPath["notes.txt"]; ok {
		t.Error("gitignored file was recorded")
	}
	// force-include wins over gitignore
	if rec, ok := byPath["Dockerfile"]; !ok || rec.Classification != ClassForceIncluded {
		t.Errorf("Dockerfile record = %+v, want force-included", byPath["Dockerfile"])
	}
}

func TestWalkRecordsFileSymlinkWithTargetStat(t *testing.T) {
	root := t.TempDir()
	content := "package real\n\nvar X = 1\n"
	writeTestFile(t, root, "real.go", content)
	if err := os.Symlink(filepath.Join(root, "real.go"), filepath.Join(root, "alias.go")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	res, err := newTestWalker(t, root, nil).Walk()
	if err != nil {
		t.Fatal(err)
	}

	var rec FileRecord
	found := false
	for _, r := range res.Records {
		if r.Path == "alias.go" {
			rec, found = r, true
		}
	}
	if !found {
		t.Fatal("alias.go missing from records")
	}
	if rec.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d (the target's size)", rec.Size, len(content))
	}
	if rec.Classification != ClassRegular {
		t.Errorf("Classification = %v, want ClassRegular", rec.Classification)
	}
}

func TestWalkDoesNotFollowDirSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "real/a.go", "package a\n")
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	res, err := newTestWalker(t, root, nil).Walk()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range recordPaths(res) {
		if strings.HasPrefix(p, "link/") {
			t.Errorf("walked through directory symlink: %s", p)
		}
	}
}
