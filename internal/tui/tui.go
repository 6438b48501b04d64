package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"github.com/sirupsen/logrus"

	"github.com/Joseda-hg/taskify/internal/model"
	"github.com/Joseda-hg/taskify/internal/search"
	"github.com/Joseda-hg/taskify/internal/workspace"
)

const (
	viewHeader  = "header"
	viewFooter  = "footer"
	viewTasks   = "tasks"
	viewNotes   = "notes"
	viewResults = "results"
	viewDetails = "details"
	viewSearch  = "search"
	viewForm    = "form"
	viewHelp    = "help"
)

var paneOrder = []string{viewTasks, viewNotes, viewResults, viewDetails}

type Options struct {
	Debounce time.Duration
	Limit    int
	// Changes triggers a reload, e.g. when another process rewrites guest
	// storage.
	Changes <-chan struct{}
	// OnTaskSelect and OnNoteSelect replace the default of opening the
	// record in the details pane.
	OnTaskSelect func(model.Task)
	OnNoteSelect func(model.Note)
	Observer     search.Observer
	Logger       logrus.FieldLogger
}

type UI struct {
	ws  *workspace.Workspace
	gui *gocui.Gui
	ctx context.Context
	now func() time.Time

	engine     *search.Engine
	dispatcher *search.Dispatcher
	// schedule runs f on the UI goroutine.
	schedule func(f func())

	onTaskSelect func(model.Task)
	onNoteSelect func(model.Note)

	tasks   []model.Task
	notes   []model.Note
	query   string
	outcome search.Outcome
	detail  *detail

	selectedTasks   int
	selectedNotes   int
	selectedResults int
	focus           string

	form         *formState
	formEditor   *formEditor
	searchEditor *searchEditor
	searchActive bool
	helpActive   bool
	status       string
}

// detail is the record shown in the details pane.
type detail struct {
	task *model.Task
	note *model.Note
}

func Run(ctx context.Context, ws *workspace.Workspace, opts Options) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(ctx, ws, opts)
	ui.gui = gui
	ui.schedule = func(f func()) {
		gui.Update(func(*gocui.Gui) error {
			f()
			return nil
		})
	}
	defer ui.dispatcher.Close()

	gui.Mouse = true
	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.loadAll(); err != nil {
		return err
	}

	if opts.Changes != nil {
		go ui.watch(ctx, opts.Changes)
	}

	if err := gui.MainLoop(); err != nil && !goerrors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func newUI(ctx context.Context, ws *workspace.Workspace, opts Options) *UI {
	engineOpts := []search.EngineOption{search.WithLimit(opts.Limit)}
	if opts.Observer != nil {
		engineOpts = append(engineOpts, search.WithObserver(opts.Observer))
	}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, search.WithLogger(opts.Logger))
	}

	ui := &UI{
		ws:       ws,
		ctx:      ctx,
		now:      time.Now,
		engine:   search.NewEngine(ws, engineOpts...),
		focus:    viewTasks,
		schedule: func(f func()) { f() },
	}
	ui.formEditor = &formEditor{ui: ui}
	ui.searchEditor = &searchEditor{ui: ui}
	ui.dispatcher = search.NewDispatcher(ui.engine, opts.Debounce, func(outcome search.Outcome) {
		ui.schedule(func() { ui.applyOutcome(outcome) })
	})

	ui.onTaskSelect = opts.OnTaskSelect
	if ui.onTaskSelect == nil {
		ui.onTaskSelect = ui.showTask
	}
	ui.onNoteSelect = opts.OnNoteSelect
	if ui.onNoteSelect == nil {
		ui.onNoteSelect = ui.showNote
	}
	return ui
}

func (u *UI) watch(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			u.schedule(func() {
				if err := u.loadAll(); err != nil {
					u.status = err.Error()
				}
			})
		}
	}
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	global := []struct {
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, u.quit},
		{'q', u.quit},
		{'r', u.reload},
		{'/', u.startSearch},
		{'?', u.toggleHelp},
		{gocui.KeyTab, u.switchFocus},
		{'1', u.focusPane(viewTasks)},
		{'2', u.focusPane(viewNotes)},
		{'3', u.focusPane(viewResults)},
		{'4', u.focusPane(viewDetails)},
	}
	for _, binding := range global {
		if err := gui.SetKeybinding("", binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}

	for _, name := range []string{viewTasks, viewNotes, viewResults} {
		for _, key := range []any{gocui.KeyArrowDown, 'j'} {
			if err := gui.SetKeybinding(name, key, gocui.ModNone, u.moveDown); err != nil {
				return err
			}
		}
		for _, key := range []any{gocui.KeyArrowUp, 'k'} {
			if err := gui.SetKeybinding(name, key, gocui.ModNone, u.moveUp); err != nil {
				return err
			}
		}
		if err := gui.SetKeybinding(name, gocui.KeyEnter, gocui.ModNone, u.openSelected); err != nil {
			return err
		}
	}

	for _, name := range []string{viewTasks, viewNotes} {
		if err := gui.SetKeybinding(name, 'a', gocui.ModNone, u.addRecord); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, 'e', gocui.ModNone, u.editRecord); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, 'd', gocui.ModNone, u.deleteRecord); err != nil {
			return err
		}
	}
	if err := gui.SetKeybinding(viewTasks, 'x', gocui.ModNone, u.cycleTaskStatus); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewNotes, 'p', gocui.ModNone, u.togglePin); err != nil {
		return err
	}

	if err := gui.SetKeybinding(viewSearch, gocui.KeyEnter, gocui.ModNone, u.submitSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewSearch, gocui.KeyEsc, gocui.ModNone, u.cancelSearch); err != nil {
		return err
	}

	formBindings := []struct {
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyEnter, u.submitForm},
		{gocui.KeyTab, u.nextFormField},
		{gocui.KeyBacktab, u.prevFormField},
		{gocui.KeyArrowDown, u.nextFormField},
		{gocui.KeyArrowUp, u.prevFormField},
		{gocui.KeyEsc, u.cancelForm},
	}
	for _, binding := range formBindings {
		if err := gui.SetKeybinding(viewForm, binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}

	for _, key := range []any{gocui.KeyEsc, 'q', '?'} {
		if err := gui.SetKeybinding(viewHelp, key, gocui.ModNone, u.closeHelp); err != nil {
			return err
		}
	}

	for _, name := range []string{viewTasks, viewNotes, viewResults} {
		viewName := name
		if err := gui.SetViewClickBinding(&gocui.ViewMouseBinding{ViewName: viewName, Key: gocui.MouseLeft, Handler: func(opts gocui.ViewMouseBindingOpts) error {
			return u.onListClick(gui, viewName, opts)
		}}); err != nil {
			return err
		}
	}
	for _, name := range paneOrder {
		if err := gui.SetKeybinding(name, gocui.MouseWheelUp, gocui.ModNone, u.scrollUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.MouseWheelDown, gocui.ModNone, u.scrollDown); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = true
	headerView.FgColor = gocui.ColorDefault
	u.renderHeader(headerView)

	footerY1 := max(maxY-2, 1)
	footerY0 := max(footerY1-2, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	footerView.BgColor = gocui.ColorDefault
	u.renderFooter(footerView)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom < bodyTop {
		return nil
	}

	l := computeLayout(maxX, bodyBottom-bodyTop+1)
	leftX0 := 0
	leftX1 := leftX0 + l.leftWidth - 1
	rightX0 := leftX1 + 1
	if rightX0 >= maxX {
		rightX0 = leftX1
	}
	rightX1 := maxX - 1

	panes := []struct {
		name       string
		title      string
		color      gocui.Attribute
		x0, y0, x1 int
		y1         int
		highlight  bool
		render     func(*gocui.View)
	}{
		{viewTasks, "1 Tasks", gocui.ColorYellow, leftX0, bodyTop, leftX1, bodyTop + l.tasksHeight - 1, true, u.renderTasks},
		{viewNotes, "2 Notes", gocui.ColorGreen, leftX0, bodyTop + l.tasksHeight, leftX1, bodyBottom, true, u.renderNotes},
		{viewResults, "3 Search", gocui.ColorMagenta, rightX0, bodyTop, rightX1, bodyTop + l.resultsHeight - 1, true, u.renderResults},
		{viewDetails, "4 Details", gocui.ColorDefault, rightX0, bodyTop + l.resultsHeight, rightX1, bodyBottom, false, u.renderDetails},
	}
	for _, pane := range panes {
		view, err := gui.SetView(pane.name, pane.x0, pane.y0, pane.x1, pane.y1, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			view.Title = pane.title
			view.TitleColor = pane.color
			if pane.name == viewDetails {
				view.Wrap = true
			}
		}
		applyViewStyle(view, u.focus == pane.name, pane.highlight)
		pane.render(view)
	}

	_, _ = gui.SetViewOnTop(viewHeader)
	_, _ = gui.SetViewOnTop(viewFooter)

	if u.searchActive {
		if err := u.showSearch(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewSearch)
	}

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(u.focus)
	}

	gui.Cursor = u.searchActive || u.form != nil
	return nil
}

type layout struct {
	leftWidth     int
	tasksHeight   int
	resultsHeight int
}

func computeLayout(width, height int) layout {
	safeWidth := max(width-2, 20)
	safeHeight := max(height, 8)

	leftWidth := safeWidth * 2 / 5
	if leftWidth < 26 {
		leftWidth = 26
	}
	if leftWidth > safeWidth-18 {
		leftWidth = safeWidth / 2
	}

	tasksHeight := max(int(float64(safeHeight)*0.55), 4)
	if safeHeight-tasksHeight < 4 {
		tasksHeight = max(safeHeight-4, 4)
	}
	resultsHeight := max(int(float64(safeHeight)*0.45), 4)
	if safeHeight-resultsHeight < 4 {
		resultsHeight = max(safeHeight-4, 4)
	}

	return layout{leftWidth: leftWidth, tasksHeight: tasksHeight, resultsHeight: resultsHeight}
}

func (u *UI) loadAll() error {
	tasks, err := u.ws.Tasks.List(u.ctx)
	if err != nil {
		return err
	}
	notes, err := u.ws.Notes.List(u.ctx)
	if err != nil {
		return err
	}
	u.tasks = tasks
	u.notes = notes

	u.selectedTasks = clamp(u.selectedTasks, len(u.tasks))
	u.selectedNotes = clamp(u.selectedNotes, len(u.notes))
	u.refreshDetail()
	return nil
}

// refreshDetail swaps the record in the details pane for its reloaded copy,
// or clears it if the record is gone.
func (u *UI) refreshDetail() {
	if u.detail == nil {
		return
	}
	switch {
	case u.detail.task != nil:
		if i := indexOfTask(u.tasks, u.detail.task.ID); i >= 0 {
			u.detail = &detail{task: &u.tasks[i]}
			return
		}
	case u.detail.note != nil:
		if i := indexOfNote(u.notes, u.detail.note.ID); i >= 0 {
			u.detail = &detail{note: &u.notes[i]}
			return
		}
	}
	u.detail = nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	query := u.query
	if query == "" {
		query = "type / to search"
	}
	counts := model.CountStatuses(u.tasks)
	fmt.Fprintf(view, "Mode: %s | Search: %s | Tasks: %d (%d done) | Notes: %d",
		u.ws.Mode, query, counts.Total, counts.Completed, len(u.notes))
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	view.SetOrigin(0, 0)
	view.SetCursor(0, 0)

	fmt.Fprintln(view, "a add | e edit | d delete | x next status (tasks) | p pin (notes) | enter open")
	fmt.Fprintln(view, "/ search | r reload | tab cycle | 1-4 panes | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTasks(view *gocui.View) {
	view.Clear()
	focused := u.focus == viewTasks
	for i, task := range u.tasks {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedTasks, focused), formatTaskSummary(task))
	}
	if len(u.tasks) == 0 {
		fmt.Fprint(view, "  No tasks yet, press a to add one")
	}
	if focused {
		view.SetCursor(0, min(u.selectedTasks, max(len(u.tasks)-1, 0)))
	}
}

func (u *UI) renderNotes(view *gocui.View) {
	view.Clear()
	focused := u.focus == viewNotes
	for i, note := range u.notes {
		fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedNotes, focused), formatNoteSummary(note))
	}
	if len(u.notes) == 0 {
		fmt.Fprint(view, "  No notes yet, press a to add one")
	}
	if focused {
		view.SetCursor(0, min(u.selectedNotes, max(len(u.notes)-1, 0)))
	}
}

func (u *UI) renderResults(view *gocui.View) {
	view.Clear()
	focused := u.focus == viewResults
	switch u.outcome.Status {
	case search.StatusOK:
		for i, result := range u.outcome.Results {
			fmt.Fprintf(view, "%s %s\n", selectionPrefix(i == u.selectedResults, focused), formatResult(result))
		}
	default:
		fmt.Fprint(view, outcomeMessage(u.outcome))
	}
	if focused {
		view.SetCursor(0, min(u.selectedResults, max(len(u.outcome.Results)-1, 0)))
	}
}

func (u *UI) renderDetails(view *gocui.View) {
	view.Clear()
	fmt.Fprint(view, strings.Join(u.detailLines(), "\n"))
}

func (u *UI) detailLines() []string {
	if u.detail == nil {
		return []string{"Nothing selected", "", "Press enter on a task, note or search result."}
	}
	if u.detail.task != nil {
		return taskDetail(*u.detail.task, u.now())
	}
	return noteDetail(*u.detail.note, u.now())
}

func (u *UI) onListClick(gui *gocui.Gui, viewName string, opts gocui.ViewMouseBindingOpts) error {
	if u.inputActive() {
		return nil
	}
	view, err := gui.View(viewName)
	if err != nil {
		return nil
	}

	_, y0, _, _ := view.Dimensions()
	_, oy := view.Origin()
	row := max(opts.Y-y0-1+oy, 0)

	switch viewName {
	case viewTasks:
		u.selectedTasks = min(row, max(len(u.tasks)-1, 0))
	case viewNotes:
		u.selectedNotes = min(row, max(len(u.notes)-1, 0))
	case viewResults:
		u.selectedResults = min(row, max(len(u.outcome.Results)-1, 0))
	}
	return u.setFocus(gui, viewName)
}

func (u *UI) scrollUp(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if view == nil {
		view = gui.CurrentView()
	}
	if view != nil {
		view.ScrollUp(1)
	}
	return nil
}

func (u *UI) scrollDown(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if view == nil {
		view = gui.CurrentView()
	}
	if view != nil {
		view.ScrollDown(1)
	}
	return nil
}

func (u *UI) switchFocus(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	next := paneOrder[0]
	for i, name := range paneOrder {
		if name == u.focus {
			next = paneOrder[(i+1)%len(paneOrder)]
			break
		}
	}
	return u.setFocus(gui, next)
}

func (u *UI) focusPane(name string) func(*gocui.Gui, *gocui.View) error {
	return func(gui *gocui.Gui, _ *gocui.View) error {
		return u.setFocus(gui, name)
	}
}

func (u *UI) setFocus(gui *gocui.Gui, name string) error {
	if u.inputActive() {
		return nil
	}
	u.focus = name
	u.setCurrentView(gui, name)
	return nil
}

func (u *UI) setCurrentView(gui *gocui.Gui, name string) {
	if gui != nil {
		_, _ = gui.SetCurrentView(name)
	}
}

func (u *UI) moveDown(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewTasks:
		if u.selectedTasks < len(u.tasks)-1 {
			u.selectedTasks++
		}
	case viewNotes:
		if u.selectedNotes < len(u.notes)-1 {
			u.selectedNotes++
		}
	case viewResults:
		if u.selectedResults < len(u.outcome.Results)-1 {
			u.selectedResults++
		}
	}
	return nil
}

func (u *UI) moveUp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewTasks:
		if u.selectedTasks > 0 {
			u.selectedTasks--
		}
	case viewNotes:
		if u.selectedNotes > 0 {
			u.selectedNotes--
		}
	case viewResults:
		if u.selectedResults > 0 {
			u.selectedResults--
		}
	}
	return nil
}

func (u *UI) openSelected(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewTasks:
		if task := u.selectedTask(); task != nil {
			u.onTaskSelect(*task)
		}
	case viewNotes:
		if note := u.selectedNote(); note != nil {
			u.onNoteSelect(*note)
		}
	case viewResults:
		u.openResult(gui)
	}
	return nil
}

func (u *UI) showTask(task model.Task) {
	u.detail = &detail{task: &task}
	if i := indexOfTask(u.tasks, task.ID); i >= 0 {
		u.selectedTasks = i
	}
}

func (u *UI) showNote(note model.Note) {
	u.detail = &detail{note: &note}
	if i := indexOfNote(u.notes, note.ID); i >= 0 {
		u.selectedNotes = i
	}
}

func (u *UI) selectedTask() *model.Task {
	if u.selectedTasks >= 0 && u.selectedTasks < len(u.tasks) {
		return &u.tasks[u.selectedTasks]
	}
	return nil
}

func (u *UI) selectedNote() *model.Note {
	if u.selectedNotes >= 0 && u.selectedNotes < len(u.notes) {
		return &u.notes[u.selectedNotes]
	}
	return nil
}

func (u *UI) reload(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.status = ""
	if err := u.loadAll(); err != nil {
		u.status = err.Error()
	}
	return nil
}

func (u *UI) cycleTaskStatus(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	task := u.selectedTask()
	if task == nil {
		return nil
	}
	next := model.NextStatus(task.Status)
	if _, err := u.ws.Tasks.Update(u.ctx, task.ID, model.TaskPatch{Status: &next}); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	return u.afterChange()
}

func (u *UI) togglePin(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	note := u.selectedNote()
	if note == nil {
		return nil
	}
	updated, err := u.ws.Notes.TogglePin(u.ctx, note.ID)
	if err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	if err := u.afterChange(); err != nil {
		return err
	}
	if i := indexOfNote(u.notes, updated.ID); i >= 0 {
		u.selectedNotes = i
	}
	return nil
}

func (u *UI) deleteRecord(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	var err error
	switch u.focus {
	case viewTasks:
		task := u.selectedTask()
		if task == nil {
			return nil
		}
		err = u.ws.Tasks.Delete(u.ctx, task.ID)
	case viewNotes:
		note := u.selectedNote()
		if note == nil {
			return nil
		}
		err = u.ws.Notes.Delete(u.ctx, note.ID)
	default:
		return nil
	}
	if err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	return u.afterChange()
}

// afterChange reloads the lists and reruns the current search so results
// never show a record that was just changed or deleted.
func (u *UI) afterChange() error {
	if err := u.loadAll(); err != nil {
		u.status = err.Error()
		return nil
	}
	if u.query != "" {
		u.dispatcher.Dispatch(u.query)
	}
	return nil
}

func (u *UI) toggleHelp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() && !u.helpActive {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	if gui != nil {
		_ = gui.DeleteView(viewHelp)
	}
	u.setCurrentView(gui, u.focus)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 18
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

func (u *UI) inputActive() bool {
	return u.searchActive || u.form != nil || u.helpActive
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Navigation:",
		"  Tab cycle panes | 1 Tasks | 2 Notes | 3 Search | 4 Details",
		"  j/k or arrows move selection | enter open in details",
		"  mouse click to focus/select, wheel scrolls",
		"",
		"Tasks:",
		"  a add | e edit | d delete | x next status",
		"",
		"Notes:",
		"  a add | e edit | d delete | p pin/unpin",
		"",
		"Search:",
		"  / opens the search box; results update while you type",
		"  enter jumps to results | esc closes the box",
		"",
		"Other:",
		"  r reload | ? help | esc/q close help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool, highlight bool) {
	view.Frame = true
	view.Highlight = focused && highlight
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}

func selectionPrefix(selected, focused bool) string {
	switch {
	case selected && focused:
		return ">"
	case selected:
		return "*"
	default:
		return " "
	}
}

func clamp(index, length int) int {
	if index >= length {
		return max(length-1, 0)
	}
	return max(index, 0)
}

func indexOfTask(tasks []model.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func indexOfNote(notes []model.Note, id string) int {
	for i, note := range notes {
		if note.ID == id {
			return i
		}
	}
	return -1
}
