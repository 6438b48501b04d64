package tui

import (
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/taskify/internal/search"
)

// searchEditor edits the search box and submits the buffer after every
// keystroke; the dispatcher debounces and drops stale outcomes.
type searchEditor struct {
	ui *UI
}

func (e *searchEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	handled := gocui.DefaultEditor.Edit(view, key, ch, mod)
	e.ui.typeQuery(view.Buffer())
	return handled
}

// typeQuery records the search box contents. A blank box clears the results
// immediately; anything else is searched once typing pauses.
func (u *UI) typeQuery(buffer string) {
	u.query = strings.TrimSpace(buffer)
	if u.query == "" {
		u.dispatcher.Dispatch("")
		return
	}
	u.dispatcher.Submit(u.query)
}

func (u *UI) applyOutcome(outcome search.Outcome) {
	if outcome.IsCanceled() {
		return
	}
	u.outcome = outcome
	u.selectedResults = 0
	if outcome.Status == search.StatusFailed {
		u.status = "search failed: " + outcome.Err.Error()
	} else if strings.HasPrefix(u.status, "search failed") {
		u.status = ""
	}
}

func (u *UI) openResult(gui *gocui.Gui) {
	results := u.outcome.Results
	if u.selectedResults < 0 || u.selectedResults >= len(results) {
		return
	}
	result := results[u.selectedResults]
	switch result.Kind {
	case search.KindTask:
		u.onTaskSelect(*result.Task)
	case search.KindNote:
		u.onNoteSelect(*result.Note)
	}
	u.setCurrentView(gui, u.focus)
}

func (u *UI) startSearch(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.searchActive = true
	return nil
}

func (u *UI) showSearch(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(30, maxX/2)
	height := 2
	x0 := (maxX - width) / 2
	y0 := maxY / 4

	view, err := gui.SetView(viewSearch, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Search tasks and notes"
		view.Wrap = false
		view.Clear()
		fmt.Fprint(view, u.query)
	}
	view.Editable = true
	view.Editor = u.searchEditor
	_, _ = gui.SetCurrentView(viewSearch)
	return nil
}

func (u *UI) submitSearch(gui *gocui.Gui, view *gocui.View) error {
	if view != nil {
		u.query = strings.TrimSpace(view.Buffer())
	}
	u.searchActive = false
	if gui != nil {
		_ = gui.DeleteView(viewSearch)
	}
	if u.query != "" {
		u.dispatcher.Dispatch(u.query)
		u.focus = viewResults
	}
	u.setCurrentView(gui, u.focus)
	return nil
}

func (u *UI) cancelSearch(gui *gocui.Gui, _ *gocui.View) error {
	u.searchActive = false
	if gui != nil {
		_ = gui.DeleteView(viewSearch)
	}
	u.setCurrentView(gui, u.focus)
	return nil
}
