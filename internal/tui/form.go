package tui

import (
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/taskify/internal/model"
)

type formKind int

const (
	formTask formKind = iota
	formNote
)

type formField struct {
	Label string
	Value string
	// Choices makes the field cycle with space/left/right instead of
	// accepting text.
	Choices []string
}

type formState struct {
	kind   formKind
	id     string
	fields []formField
	index  int
}

type formEditor struct {
	ui *UI
}

const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
	fieldCategory
	fieldDue
	fieldPriority
)

const (
	fieldNoteTitle = iota
	fieldNoteContent
	fieldNoteTags
	fieldNotePinned
)

var (
	statusChoices   = []string{string(model.StatusPending), string(model.StatusInProgress), string(model.StatusCompleted)}
	priorityChoices = []string{"", string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)}
	pinnedChoices   = []string{"no", "yes"}
)

func buildTaskFields(task *model.Task) []formField {
	fields := []formField{
		{Label: "Title"},
		{Label: "Description"},
		{Label: "Status", Choices: statusChoices, Value: string(model.StatusPending)},
		{Label: "Category"},
		{Label: "Due (YYYY-MM-DD)"},
		{Label: "Priority", Choices: priorityChoices},
	}
	if task == nil {
		return fields
	}

	fields[fieldTitle].Value = task.Title
	fields[fieldDescription].Value = task.Body()
	fields[fieldStatus].Value = string(task.Status)
	if task.Category != nil {
		fields[fieldCategory].Value = *task.Category
	}
	if task.DueDate != nil {
		fields[fieldDue].Value = task.DueDate.String()
	}
	if task.Priority != nil {
		fields[fieldPriority].Value = string(*task.Priority)
	}
	return fields
}

func buildNoteFields(note *model.Note) []formField {
	fields := []formField{
		{Label: "Title"},
		{Label: "Content"},
		{Label: "Tags (comma separated)"},
		{Label: "Pinned", Choices: pinnedChoices, Value: "no"},
	}
	if note == nil {
		return fields
	}

	fields[fieldNoteTitle].Value = note.Title
	fields[fieldNoteContent].Value = note.Content
	fields[fieldNoteTags].Value = strings.Join(note.Tags, ", ")
	if note.IsPinned {
		fields[fieldNotePinned].Value = "yes"
	}
	return fields
}

func parseTaskFields(fields []formField) (model.TaskInput, error) {
	due, err := parseDue(fields[fieldDue].Value)
	if err != nil {
		return model.TaskInput{}, err
	}

	description := strings.TrimSpace(fields[fieldDescription].Value)
	category := strings.TrimSpace(fields[fieldCategory].Value)
	input := model.TaskInput{
		Title:       strings.TrimSpace(fields[fieldTitle].Value),
		Description: &description,
		Status:      model.Status(fields[fieldStatus].Value),
		Category:    &category,
		DueDate:     due,
	}
	if value := fields[fieldPriority].Value; value != "" {
		priority := model.Priority(value)
		input.Priority = &priority
	}
	return input, nil
}

// taskPatchFromFields sets every field, so emptied form fields clear the
// stored value.
func taskPatchFromFields(fields []formField) (model.TaskPatch, error) {
	input, err := parseTaskFields(fields)
	if err != nil {
		return model.TaskPatch{}, err
	}
	due := model.Date{}
	if input.DueDate != nil {
		due = *input.DueDate
	}
	priority := model.Priority(fields[fieldPriority].Value)
	return model.TaskPatch{
		Title:       &input.Title,
		Description: input.Description,
		Status:      &input.Status,
		Category:    input.Category,
		DueDate:     &due,
		Priority:    &priority,
	}, nil
}

func parseNoteFields(fields []formField) model.NoteInput {
	return model.NoteInput{
		Title:    strings.TrimSpace(fields[fieldNoteTitle].Value),
		Content:  fields[fieldNoteContent].Value,
		Tags:     parseTags(fields[fieldNoteTags].Value),
		IsPinned: fields[fieldNotePinned].Value == "yes",
	}
}

func notePatchFromFields(fields []formField) model.NotePatch {
	input := parseNoteFields(fields)
	return model.NotePatch{
		Title:    &input.Title,
		Content:  &input.Content,
		Tags:     &input.Tags,
		IsPinned: &input.IsPinned,
	}
}

func parseDue(value string) (*model.Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := model.ParseDate(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid due date")
	}
	return &parsed, nil
}

func parseTags(value string) []string {
	return model.NormalizeTags(strings.Split(value, ","))
}

func (u *UI) addRecord(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewTasks:
		u.form = &formState{kind: formTask, fields: buildTaskFields(nil)}
	case viewNotes:
		u.form = &formState{kind: formNote, fields: buildNoteFields(nil)}
	}
	return nil
}

func (u *UI) editRecord(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewTasks:
		if task := u.selectedTask(); task != nil {
			u.form = &formState{kind: formTask, id: task.ID, fields: buildTaskFields(task)}
		}
	case viewNotes:
		if note := u.selectedNote(); note != nil {
			u.form = &formState{kind: formNote, id: note.ID, fields: buildNoteFields(note)}
		}
	}
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := min(10, max(7, maxY/2))
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	view.Title = u.form.title()
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (f *formState) title() string {
	noun := "Task"
	if f.kind == formNote {
		noun = "Note"
	}
	if f.id != "" {
		return "Edit " + noun
	}
	return "New " + noun
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}

	if err := u.saveForm(); err != nil {
		u.status = err.Error()
		return nil
	}

	u.form = nil
	u.status = ""
	if gui != nil {
		_ = gui.DeleteView(viewForm)
	}
	u.setCurrentView(gui, u.focus)
	return u.afterChange()
}

func (u *UI) saveForm() error {
	form := u.form
	switch form.kind {
	case formTask:
		if form.id == "" {
			input, err := parseTaskFields(form.fields)
			if err != nil {
				return err
			}
			_, err = u.ws.Tasks.Create(u.ctx, input)
			return err
		}
		patch, err := taskPatchFromFields(form.fields)
		if err != nil {
			return err
		}
		_, err = u.ws.Tasks.Update(u.ctx, form.id, patch)
		return err
	default:
		if form.id == "" {
			_, err := u.ws.Notes.Create(u.ctx, parseNoteFields(form.fields))
			return err
		}
		_, err := u.ws.Notes.Update(u.ctx, form.id, notePatchFromFields(form.fields))
		return err
	}
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.form = nil
	if gui != nil {
		_ = gui.DeleteView(viewForm)
	}
	u.setCurrentView(gui, u.focus)
	return nil
}

func (u *UI) nextFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		value := field.Value
		if field.Choices != nil {
			if value == "" {
				value = "none"
			}
			value = "< " + value + " >"
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, value)
	}
	current := u.form.fields[u.form.index]
	cursorX := len([]rune(current.Label)) + len([]rune(current.Value)) + 4
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	field := &ui.form.fields[ui.form.index]

	if field.Choices != nil {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace:
			field.Value = cycleChoice(field.Choices, field.Value, 1)
		case gocui.KeyArrowLeft:
			field.Value = cycleChoice(field.Choices, field.Value, -1)
		}
		ui.renderForm(view)
		return true
	}

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view)
	return true
}

func cycleChoice(choices []string, current string, delta int) string {
	index := 0
	for i, choice := range choices {
		if choice == current {
			index = i
			break
		}
	}
	index = (index + delta + len(choices)) % len(choices)
	return choices[index]
}
