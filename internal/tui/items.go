package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/search"
)

func statusMarker(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func formatTaskSummary(task model.Task) string {
	parts := []string{statusMarker(task.Status) + " " + task.Title}
	if task.Priority != nil {
		parts = append(parts, string(*task.Priority))
	}
	if task.Category != nil {
		parts = append(parts, *task.Category)
	}
	if task.DueDate != nil {
		parts = append(parts, "due "+task.DueDate.String())
	}
	return strings.Join(parts, " | ")
}

func formatNoteSummary(note model.Note) string {
	pin := " "
	if note.IsPinned {
		pin = "^"
	}
	summary := pin + " " + note.Title
	if len(note.Tags) > 0 {
		summary += " | #" + strings.Join(note.Tags, " #")
	}
	return summary
}

func formatResult(result search.Result) string {
	return fmt.Sprintf("%3d %-4s %s", result.Score, result.Kind, result.Title())
}

func outcomeMessage(outcome search.Outcome) string {
	switch outcome.Status {
	case search.StatusEmpty:
		return fmt.Sprintf("No tasks or notes match %q", outcome.Query)
	case search.StatusFailed:
		return "Search failed, press / to try again"
	default:
		return "Press / to search tasks and notes"
	}
}

func taskDetail(task model.Task, now time.Time) []string {
	lines := []string{
		task.Title,
		fmt.Sprintf("Status: %s", task.Status),
		fmt.Sprintf("Priority: %s", orNA(task.Priority)),
		fmt.Sprintf("Category: %s", orNA(task.Category)),
	}
	due := "n/a"
	if task.DueDate != nil {
		due = task.DueDate.String()
	}
	lines = append(lines,
		fmt.Sprintf("Due: %s", due),
		fmt.Sprintf("Created: %s", humanize.RelTime(task.CreatedAt, now, "ago", "from now")),
		fmt.Sprintf("Updated: %s", humanize.RelTime(task.UpdatedAt, now, "ago", "from now")),
		"",
		task.Body(),
	)
	return lines
}

func noteDetail(note model.Note, now time.Time) []string {
	tags := "no tags"
	if len(note.Tags) > 0 {
		tags = strings.Join(note.Tags, ", ")
	}
	pinned := "no"
	if note.IsPinned {
		pinned = "yes"
	}
	return []string{
		note.Title,
		fmt.Sprintf("Tags: %s", tags),
		fmt.Sprintf("Pinned: %s", pinned),
		fmt.Sprintf("Updated: %s", humanize.RelTime(note.UpdatedAt, now, "ago", "from now")),
		"",
		note.Content,
	}
}

func orNA[T ~string](value *T) string {
	if value == nil {
		return "n/a"
	}
	return string(*value)
}
