package snapshot

import (
	"bytes"
	"testing"
)

func TestIsTextContent(t *testing.T) {
	cases := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"empty", nil, true},
		{"plain source", []byte("package main\n\nfunc main() {}\n"), true},
		{"utf8 text", []byte("héllo wörld — ünïcode\n"), true},
		{"null byte", []byte("abc\x00def"), false},
		{"mostly control bytes", bytes.Repeat([]byte{0x01, 0x02, 'a'}, 100), false},
		{"invalid utf8", []byte{'o', 'k', 0xff, 0xfe, 'x'}, false},
		{"tabs and newlines", []byte("a\tb\r\nc\n"), true},
	}
	for _, c := range cases {
		if got := isTextContent(c.content); got != c.want {
			t.Errorf("%s: isTextContent = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCountLines(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one line\n", 1},
		{"no trailing newline", 1},
		{"a\nb\nc\n", 3},
		{"a\nb\nc", 3},
	}
	for _, c := range cases {
		if got := countLines([]byte(c.content)); got != c.want {
			t.Errorf("countLines(%q) = %d, want %d", c.content, got, c.want)
		}
	}
}
