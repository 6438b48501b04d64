package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GuestOwner is the synthetic owner of records kept in local storage.
const GuestOwner = "guest"

const DateLayout = "2006-01-02"

var ErrInvalid = errors.New("invalid input")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type Task struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      string    `json:"user_id" yaml:"user_id"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description,omitempty"`
	Status      Status    `json:"status" yaml:"status"`
	Category    *string   `json:"category" yaml:"category,omitempty"`
	DueDate     *Date     `json:"due_date" yaml:"due_date,omitempty"`
	Priority    *Priority `json:"priority" yaml:"priority,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Body is the text scored alongside the title; a missing description is empty.
func (t Task) Body() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

type Note struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Tags      []string  `json:"tags" yaml:"tags"`
	IsPinned  bool      `json:"is_pinned" yaml:"is_pinned"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether term is a case-insensitive substring of the title,
// the content or any single tag.
func (n Note) Matches(term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Content), needle) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Date is a calendar day without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date{Time: parsed}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}
	// Stored rows may carry a full timestamp.
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

type TaskInput struct {
	Title       string    `json:"title" validate:"required,notblank"`
	Description *string   `json:"description"`
	Status      Status    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Category    *string   `json:"category"`
	DueDate     *Date     `json:"due_date"`
	Priority    *Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// TaskPatch changes only the non-nil fields. For nullable fields a pointer to
// the empty value clears the field.
type TaskPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *Status   `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Category    *string   `json:"category"`
	DueDate     *Date     `json:"due_date"`
	Priority    *Priority `json:"priority" validate:"omitempty,oneof='' low medium high"`
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Category == nil && p.DueDate == nil && p.Priority == nil
}

// Apply returns task with the patch applied. UpdatedAt is left to the caller.
func (p TaskPatch) Apply(task Task) Task {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = nullableString(*p.Description)
	}
	if p.Status != nil {
		task.Status = NormalizeStatus(*p.Status)
	}
	if p.Category != nil {
		task.Category = nullableString(*p.Category)
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			task.DueDate = nil
		} else {
			due := *p.DueDate
			task.DueDate = &due
		}
	}
	if p.Priority != nil {
		if *p.Priority == "" {
			task.Priority = nil
		} else {
			priority := *p.Priority
			task.Priority = &priority
		}
	}
	return task
}

type NoteInput struct {
	Title    string   `json:"title" validate:"required,notblank"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"is_pinned"`
}

type NotePatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"is_pinned"`
}

func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.IsPinned == nil
}

func (p NotePatch) Apply(note Note) Note {
	if p.Title != nil {
		note.Title = *p.Title
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
	if p.Tags != nil {
		note.Tags = NormalizeTags(*p.Tags)
	}
	if p.IsPinned != nil {
		note.IsPinned = *p.IsPinned
	}
	return note
}

// TaskStats counts tasks per status.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

func CountStatuses(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

func NormalizeStatus(status Status) Status {
	value := Status(strings.TrimSpace(strings.ToLower(string(status))))
	if value == "" {
		return StatusPending
	}
	return value
}

// NextStatus cycles pending -> in-progress -> completed -> pending.
func NextStatus(status Status) Status {
	for i, s := range Statuses {
		if s == status {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// NewTask builds a task record from validated input.
func NewTask(id, owner string, input TaskInput, now time.Time) Task {
	task := Task{
		ID:        id,
		UserID:    owner,
		Title:     strings.TrimSpace(input.Title),
		Status:    NormalizeStatus(input.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != nil {
		task.Description = nullableString(*input.Description)
	}
	if input.Category != nil {
		task.Category = nullableString(strings.TrimSpace(*input.Category))
	}
	if input.DueDate != nil && !input.DueDate.IsZero() {
		due := *input.DueDate
		task.DueDate = &due
	}
	if input.Priority != nil && *input.Priority != "" {
		priority := *input.Priority
		task.Priority = &priority
	}
	return task
}

// NewNote builds a note record from validated input.
func NewNote(id, owner string, input NoteInput, now time.Time) Note {
	return Note{
		ID:        id,
		UserID:    owner,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Tags:      NormalizeTags(input.Tags),
		IsPinned:  input.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch returns the next updated_at for a record last changed at prev. The
// result is always after prev even if the clock did not move.
func Touch(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}
