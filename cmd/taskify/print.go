package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/search"
)

var (
	taskBadge    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	noteBadge    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")).Padding(0, 1)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pinnedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusStyles = map[model.Status]lipgloss.Style{
		model.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		model.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		model.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func kindBadge(kind search.Kind) string {
	if kind == search.KindNote {
		return noteBadge.Render("NOTE")
	}
	return taskBadge.Render("TASK")
}

func formatResultLine(result search.Result, now time.Time) string {
	return fmt.Sprintf("%s %s %s %s",
		kindBadge(result.Kind),
		scoreStyle.Render(fmt.Sprintf("%3d", result.Score)),
		titleStyle.Render(result.Title()),
		dimStyle.Render(fmt.Sprintf("(%s, updated %s)", result.ID(), humanize.RelTime(result.UpdatedAt(), now, "ago", "from now"))),
	)
}

func formatTaskLine(task model.Task, now time.Time) string {
	status, ok := statusStyles[task.Status]
	if !ok {
		status = statusStyles[model.StatusPending]
	}
	parts := []string{
		status.Render(fmt.Sprintf("%-11s", task.Status)),
		titleStyle.Render(task.Title),
	}
	var extra []string
	if task.Priority != nil {
		extra = append(extra, string(*task.Priority))
	}
	if task.Category != nil {
		extra = append(extra, *task.Category)
	}
	if task.DueDate != nil {
		extra = append(extra, "due "+task.DueDate.String())
	}
	extra = append(extra, task.ID, "updated "+humanize.RelTime(task.UpdatedAt, now, "ago", "from now"))
	parts = append(parts, dimStyle.Render("("+strings.Join(extra, ", ")+")"))
	return strings.Join(parts, " ")
}

func formatNoteLine(note model.Note, now time.Time) string {
	pin := " "
	if note.IsPinned {
		pin = pinnedStyle.Render("*")
	}
	extra := []string{note.ID, "updated " + humanize.RelTime(note.UpdatedAt, now, "ago", "from now")}
	if len(note.Tags) > 0 {
		extra = append([]string{"#" + strings.Join(note.Tags, " #")}, extra...)
	}
	return fmt.Sprintf("%s %s %s", pin, titleStyle.Render(note.Title), dimStyle.Render("("+strings.Join(extra, ", ")+")"))
}
