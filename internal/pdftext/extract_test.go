package pdftext

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractEmptyInput(t *testing.T) {
	if got := Extract(nil); got != "" {
		t.Fatalf("expected empty text for nil input, got %q", got)
	}
	if got := Extract([]byte{}); got != "" {
		t.Fatalf("expected empty text for empty input, got %q", got)
	}
}

func TestExtractCorruptInput(t *testing.T) {
	// Not a PDF at all. Must yield "" without panicking.
	if got := Extract([]byte("definitely not a pdf document")); got != "" {
		t.Fatalf("expected empty text for corrupt input, got %q", got)
	}
}

func TestExtractTruncatedHeader(t *testing.T) {
	// A PDF header with garbage after it trips the parser deeper in; the
	// recover path must still return "".
	if got := Extract([]byte("%PDF-1.7\ngarbage")); got != "" {
		t.Fatalf("expected empty text for truncated PDF, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("short strings must pass through, got %q", got)
	}
	long := strings.Repeat("x", 20)
	if got := truncate(long, 10); len(got) != 10 {
		t.Errorf("expected truncation to 10 chars, got %d", len(got))
	}
	if got := truncate("", 10); got != "" {
		t.Errorf("empty string must pass through, got %q", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	// "é" is two bytes; a cut landing mid-rune must back off to the
	// previous boundary instead of leaving an invalid tail.
	s := "abcé"
	got := truncate(s, 4)
	if got != "abc" {
		t.Errorf("expected cut at rune boundary, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}

	long := strings.Repeat("é", 100)
	got = truncate(long, 15)
	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}
	if len(got) != 14 {
		t.Errorf("expected 14 bytes after backing off mid-rune, got %d", len(got))
	}
}
