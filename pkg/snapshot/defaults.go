package snapshot

import (
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the maximum size of an embeddable file in bytes.
const DefaultMaxFileSize int64 = 10485760 // 10 MiB

// ArtifactPattern matches snapshot artifacts produced by this tool. It is
// excluded from traversal and appended to .gitignore so snapshots never
// embed or commit themselves.
const ArtifactPattern = "*_merged_sources*.txt"

// defaultExcludeDirs lists directory names pruned from traversal. Exclusion
// is exact-name membership only: a dotted directory like .github is never
// pruned unless it appears here.
var defaultExcludeDirs = []string{
	// Python
	"venv", ".venv", "env", "ENV", "env.bak", "venv.bak", "__pycache__",
	".pytest_cache", ".mypy_cache", ".ruff_cache", ".tox", ".eggs",

	// Node
	"node_modules", ".next",

	// General
	".git", ".vscode", ".idea", "dist", "build", "coverage", "postgres_data",
	"playwright-report", "test-results", ".turbo", "temp", "tmp",
}

// defaultExcludeFiles lists glob patterns for files dropped from the
// snapshot: editor droppings, lockfiles, minified assets, and binary
// formats by extension.
var defaultExcludeFiles = []string{
	".DS_Store", "Thumbs.db",
	"*.pyc", "*.pyo", "*.pyd", "*.so", "*.dll", "*.dylib", "*.exe",
	"*.o", "*.a", "*.lib", "*.obj", "*.class", "*.jar", "*.war",
	"*.log", "*.pid", "*.seed", "*.pid.lock",
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"*.min.js", "*.min.css", "*.map",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.svg", "*.webp",
	"*.mp4", "*.avi", "*.mov", "*.wmv", "*.flv", "*.webm",
	"*.mp3", "*.wav", "*.ogg", "*.flac",
	"*.zip", "*.tar", "*.gz", "*.bz2", "*.7z", "*.rar",
	"*.pdf", "*.doc", "*.docx", "*.xls", "*.xlsx",
	"*.woff", "*.woff2", "*.ttf", "*.eot", "*.otf",
	"*.lock",
	ArtifactPattern,
}

// defaultSensitivePatterns lists glob patterns, matched case-insensitively,
// for files whose content must never be embedded.
var defaultSensitivePatterns = []string{
	"*.env", "*.env.*",
	"*.key", "*.pem", "*.crt", "*.cert",
	"*secrets*", "*credentials*", "*password*",
}

// defaultForceInclude lists exact file names embedded regardless of any
// exclusion rule, including the size limit.
var defaultForceInclude = []string{
	"Dockerfile", "docker-compose.yml", ".dockerignore",
	".gitignore", ".gitattributes",
	"go.mod", "go.sum", "Makefile",
	"requirements.txt", "package.json", "tsconfig.json",
	"README.md", "LICENSE", "CHANGELOG.md",
}

// rootMarkers are the files and directories whose presence identifies a
// project root during upward detection.
var rootMarkers = []string{".git", "go.mod", "pyproject.toml", "requirements.txt", "package.json", ".gitignore"}

// languageByExt maps lowercase file extensions to report language names.
var languageByExt = map[string]string{
	".py": "Python", ".js": "JavaScript", ".ts": "TypeScript",
	".jsx": "React JSX", ".tsx": "React TSX", ".css": "CSS", ".scss": "SCSS",
	".html": "HTML", ".json": "JSON", ".yaml": "YAML", ".yml": "YAML",
	".toml": "TOML", ".md": "Markdown", ".sql": "SQL", ".sh": "Shell",
	".bash": "Bash", ".go": "Go", ".rs": "Rust", ".java": "Java",
	".c": "C", ".cpp": "C++", ".h": "C Header", ".hpp": "C++ Header",
	".rb": "Ruby", ".php": "PHP", ".lua": "Lua", ".xml": "XML",
	".ini": "INI", ".cfg": "Config", ".conf": "Config", ".txt": "Text",
}

// LanguageFor returns the report language name for a file name.
func LanguageFor(name string) string {
	if name == "Dockerfile" {
		return "Docker"
	}
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	return "Text"
}
