package ui

import (
	"fmt"
	"strings"

	"hashnotes/internal/models"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// FormatNoteText renders a note body as markdown, or returns it unchanged
// when raw is set or rendering fails.
func FormatNoteText(text string, raw bool) string {
	if raw || strings.TrimSpace(text) == "" {
		return text
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func FormatNote(note models.Note, raw bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s  %s\n", faint(fmt.Sprintf("#%d", note.ID)), bold(note.Title)))
	if body := FormatNoteText(note.Text, raw); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatNoteList renders the notes view.
func FormatNoteList(notes []models.Note, raw bool) string {
	var sb strings.Builder
	sb.WriteString(bold("Your Notes") + "\n")
	sb.WriteString(Separator())
	if len(notes) == 0 {
		sb.WriteString(faint("No notes found for this hash.") + "\n")
		return sb.String()
	}
	for i, n := range notes {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(FormatNote(n, raw))
	}
	return sb.String()
}

// FormatHashNotice is shown once, right after the first note is saved.
func FormatHashNotice(hash string) string {
	return fmt.Sprintf("Your unique hash is: %s. Save it to access your notes.\n", cyan(hash))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
