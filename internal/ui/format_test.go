package ui

import (
	"strings"
	"testing"

	"hashnotes/internal/models"
)

func TestFormatNote(t *testing.T) {
	output := FormatNote(models.Note{ID: 42, Title: "Groceries", Text: "milk"}, true)

	if !strings.Contains(output, "#42") {
		t.Error("expected output to contain note ID")
	}
	if !strings.Contains(output, "Groceries") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "milk") {
		t.Error("expected output to contain text")
	}
}

func TestFormatNoteTextRaw(t *testing.T) {
	content := "# Hello\n\nThis is **bold** text."
	if got := FormatNoteText(content, true); got != content {
		t.Errorf("expected raw content back, got %q", got)
	}
}

func TestFormatNoteTextMarkdown(t *testing.T) {
	output := FormatNoteText("# Hello\n\nThis is **bold** text.", false)
	if output == "" {
		t.Error("expected non-empty output")
	}
	if !strings.Contains(output, "bold") {
		t.Error("expected rendered output to keep the words")
	}
}

func TestFormatNoteListEmpty(t *testing.T) {
	output := FormatNoteList(nil, true)
	if !strings.Contains(output, "No notes found") {
		t.Errorf("expected empty-list message, got %q", output)
	}
}

func TestFormatNoteListOrder(t *testing.T) {
	notes := []models.Note{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}
	output := FormatNoteList(notes, true)

	first := strings.Index(output, "first")
	second := strings.Index(output, "second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected notes in order, got %q", output)
	}
}

func TestFormatHashNotice(t *testing.T) {
	output := FormatHashNotice("abc123")
	if !strings.Contains(output, "abc123") || !strings.Contains(output, "Save it") {
		t.Errorf("unexpected notice %q", output)
	}
}
