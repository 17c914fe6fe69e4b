package export

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Introduction", "Introduction"},
		{"punctuation stripped", "Intro: Chapter #1?", "Intro_Chapter_1"},
		{"slashes stripped", `Part\One/Two`, "PartOneTwo"},
		{"spaces collapse", "  spaced   out  ", "spaced_out"},
		{"tabs and newlines collapse", "a\t\nb", "a_b"},
		{"underscores trimmed", "___keep me___", "keep_me"},
		{"dash kept", "front-matter", "front-matter"},
		{"only punctuation", "***!!!", ""},
		{"unicode stripped", "Füße § 3", "Fe_3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeName(tc.in); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	got := SanitizeName(strings.Repeat("a", 150))
	if len([]rune(got)) != 100 {
		t.Errorf("expected 100 runes, got %d", len([]rune(got)))
	}
}

func TestEntryNameFallsBackToPosition(t *testing.T) {
	used := make(map[string]bool)
	if got := entryName(used, "???", 0); got != "chapter_01.pdf" {
		t.Errorf("expected chapter_01.pdf, got %q", got)
	}
	if got := entryName(used, "", 11); got != "chapter_12.pdf" {
		t.Errorf("expected chapter_12.pdf, got %q", got)
	}
}

func TestEntryNameDeduplicates(t *testing.T) {
	used := make(map[string]bool)
	names := []string{"Alpha", "Alpha", "Alpha"}
	want := []string{"Alpha.pdf", "Alpha_2.pdf", "Alpha_3.pdf"}
	for i, n := range names {
		if got := entryName(used, n, i); got != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestEntryNameAvoidsSuffixCollision(t *testing.T) {
	used := make(map[string]bool)
	got := []string{
		entryName(used, "A", 0),
		entryName(used, "A", 1),
		entryName(used, "A_2", 2),
	}
	seen := make(map[string]bool)
	for _, g := range got {
		if seen[g] {
			t.Fatalf("duplicate entry name %q in %v", g, got)
		}
		seen[g] = true
	}
}
