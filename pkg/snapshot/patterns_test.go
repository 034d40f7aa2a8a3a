package snapshot

import "testing"

func TestPatternSetMatches(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		// exact names match at any depth
		{"package-lock.json", "package-lock.json", true},
		{"package-lock.json", "web/package-lock.json", true},
		{"package-lock.json", "package-lock.json.bak", false},

		// wildcard stays within a segment
		{"*.pyc", "mod.pyc", true},
		{"*.pyc", "pkg/mod.pyc", true},
		{"*.pyc", "pkg/mod.py", false},
		{"*.min.js", "assets/app.min.js", true},
		{"*.min.js", "assets/app.js", false},

		// substring-style patterns
		{"*secrets*", "secrets.yaml", true},
		{"*secrets*", "config/my-secrets.txt", true},
		{"*secrets*", "config/secrets/app.yaml", true},
		{"*secrets*", "config/app.yaml", false},

		// single-char ?
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},

		// rooted patterns anchor at the project root
		{"docs/*.md", "docs/a.md", true},
		{"docs/*.md", "sub/docs/a.md", false},

		// double-star crosses segments
		{"vendor/**", "vendor/a.go", true},
		{"vendor/**", "vendor/sub/deep/a.go", true},
		{"vendor/**", "other/a.go", false},
		{"**/fixtures/*.json", "fixtures/a.json", true},
		{"**/fixtures/*.json", "test/fixtures/a.json", true},
		{"**/fixtures/*.json", "test/fixtures/sub/a.json", false},

		// a bare pattern matching a directory segment covers descendants
		{"*.egg-info", "pkg.egg-info/PKG-INFO", true},
	}

	for _, c := range cases {
		ps, err := CompilePatterns([]string{c.pattern}, false)
		if err != nil {
			t.Fatalf("CompilePatterns(%q): %v", c.pattern, err)
		}
		if got := ps.Matches(c.path); got != c.want {
			t.Errorf("pattern %q path %q: got %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestPatternSetCaseInsensitive(t *testing.T) {
	ps, err := CompilePatterns([]string{"*secrets*", "*.PEM"}, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"SECRETS.yaml", "My-Secrets.txt", "server.pem", "server.PEM"} {
		if !ps.Matches(path) {
			t.Errorf("expected case-insensitive match for %q", path)
		}
	}

	sensitive, err := CompilePatterns([]string{"*secrets*"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if sensitive.Matches("SECRETS.yaml") {
		t.Error("case-sensitive set should not match SECRETS.yaml")
	}
}

func TestPatternSetSkipsBlankPatterns(t *testing.T) {
	ps, err := CompilePatterns([]string{"", "  ", "*.log"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if ps.Len() != 1 {
		t.Errorf("expected 1 compiled pattern, got %d", ps.Len())
	}
}

func TestPatternSetMatchReportsPattern(t *testing.T) {
	ps, err := CompilePatterns([]string{"*.log", "*.tmp"}, false)
	if err != nil {
		t.Fatal(err)
	}
	raw, ok := ps.Match("debug.tmp")
	if !ok || raw != "*.tmp" {
		t.Errorf("got (%q, %v), want (%q, true)", raw, ok, "*.tmp")
	}
}
