package templates

import (
	"strings"
	"testing"
)

func TestLoadMissingTemplateIsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())

	content, err := store.Load(KindResume)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content, got %q", content)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir() + "/nested/templates")

	cases := []string{
		"",
		`\documentclass{article}`,
		"unicode: résumé — 履歴書 ✓",
		strings.Repeat("x", 3<<20),
	}
	for _, content := range cases {
		if err := store.Save(KindResume, content); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := store.Load(KindResume)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got != content {
			t.Fatalf("round trip mismatch: saved %d bytes, loaded %d bytes", len(content), len(got))
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save(KindCoverLetter, "first"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(KindCoverLetter, "second"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(KindCoverLetter)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestKindsUseSeparateFiles(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save(KindResume, "R"); err != nil {
		t.Fatalf("save resume: %v", err)
	}
	if err := store.Save(KindCoverLetter, "CL"); err != nil {
		t.Fatalf("save cover letter: %v", err)
	}

	resume, _ := store.Load(KindResume)
	letter, _ := store.Load(KindCoverLetter)
	if resume != "R" || letter != "CL" {
		t.Fatalf("expected separate contents, got %q / %q", resume, letter)
	}
}

func TestParseKind(t *testing.T) {
	if _, err := ParseKind("invoice"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	for _, raw := range []string{"resume", "Resume", " resume "} {
		kind, err := ParseKind(raw)
		if err != nil || kind != KindResume {
			t.Fatalf("parse %q: kind=%q err=%v", raw, kind, err)
		}
	}
	for _, raw := range []string{"cover_letter", "cover-letter", "CoverLetter"} {
		kind, err := ParseKind(raw)
		if err != nil || kind != KindCoverLetter {
			t.Fatalf("parse %q: kind=%q err=%v", raw, kind, err)
		}
	}
}
