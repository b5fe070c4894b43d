// Package ui provides the Bubble Tea TUI for Lectern.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"lectern/internal/notesapi"
	"lectern/internal/prefs"
	"lectern/internal/state"
)

// View represents the current active view, one level of the hierarchy.
type View int

const (
	ViewCourses View = iota
	ViewSubjects
	ViewContents
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	prefsPath string

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	// Navigation state
	currentView View
	courseRow   int
	subjectRow  int
	contentRow  int

	// selectedContentID keeps the body pane stable across refetches;
	// empty means "select the first item when one arrives".
	selectedContentID string

	// Data state
	snapshot state.Snapshot

	// Body pane
	bodyViewport viewport.Model

	// Overlays
	modal    Modal
	showHelp bool

	// Transient success message shown in the footer.
	notice string

	spinner spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	snapshot := opts.Store.Snapshot()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		prefsPath:   prefsPath,
		theme:       GetTheme(snapshot.DarkMode),
		keys:        DefaultKeyMap(),
		currentView: ViewCourses,
		snapshot:    snapshot,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.bodyViewport = viewport.New(m.bodyWidth(), m.bodyHeight())
		} else {
			m.bodyViewport.Width = m.bodyWidth()
			m.bodyViewport.Height = m.bodyHeight()
		}
		m.ready = true
		m.syncSelection()
		return m, nil

	case opResultMsg:
		return m.handleOpResult(msg)

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleOpResult processes the outcome of a store operation. Failures
// keep an open form modal up so the user can retry; successes dismiss
// the modal and leave a footer notice.
func (m Model) handleOpResult(msg opResultMsg) (tea.Model, tea.Cmd) {
	m.snapshot = m.store.Snapshot()
	m.theme = GetTheme(m.snapshot.DarkMode)

	if msg.err != nil {
		if form, ok := m.modal.(*formModal); ok {
			errText := msg.errText
			if errText == "" {
				errText = m.snapshot.LastError
			}
			if errText == "" {
				errText = msg.err.Error()
			}
			form.errText = errText
			form.submitting = false
		}
		m.syncSelection()
		return m, nil
	}

	if _, ok := m.modal.(*formModal); ok {
		m.modal = nil
	}
	if msg.notice != "" {
		m.notice = msg.notice
	}
	m.syncSelection()
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		m.modal = modal
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.DarkMode):
		return m.toggleDarkMode()

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.refreshActiveCmd(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Back):
		return m.navigateBack()
	}

	switch m.currentView {
	case ViewCourses:
		return m.handleCoursesKey(msg)
	case ViewSubjects:
		return m.handleSubjectsKey(msg)
	case ViewContents:
		return m.handleContentsKey(msg)
	}

	return m, nil
}

// toggleDarkMode flips the store flag, swaps the palette, and persists
// the preference.
func (m Model) toggleDarkMode() (tea.Model, tea.Cmd) {
	on := m.store.ToggleDarkMode()
	m.theme = GetTheme(on)
	m.snapshot = m.store.Snapshot()
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, prefs.Prefs{DarkMode: on})
	}
	return m, nil
}

// navigateBack climbs one level up the hierarchy.
func (m Model) navigateBack() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewContents:
		m.store.SetCurrentSubject(nil)
		m.snapshot = m.store.Snapshot()
		m.currentView = ViewSubjects
		m.selectedContentID = ""
	case ViewSubjects:
		m.store.SetCurrentCourse(nil)
		m.snapshot = m.store.Snapshot()
		m.currentView = ViewCourses
	}
	return m, nil
}

// refreshActiveCmd re-fetches the collection behind the current view.
func (m Model) refreshActiveCmd() tea.Cmd {
	switch m.currentView {
	case ViewSubjects:
		if course := m.snapshot.CurrentCourse; course != nil {
			return m.fetchSubjectsCmd(course.ID)
		}
		return m.fetchCoursesCmd()
	case ViewContents:
		if subject := m.snapshot.CurrentSubject; subject != nil {
			return m.fetchContentsCmd(subject.ID)
		}
		return m.fetchCoursesCmd()
	default:
		return m.fetchCoursesCmd()
	}
}

func (m Model) handleCoursesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	courses := m.snapshot.Courses

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.courseRow < len(courses)-1 {
			m.courseRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.courseRow > 0 {
			m.courseRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.courseRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(courses) > 0 {
			m.courseRow = len(courses) - 1
		}

	case key.Matches(msg, m.keys.Open):
		if m.courseRow >= len(courses) {
			return m, nil
		}
		course := courses[m.courseRow]
		m.store.SetCurrentCourse(&course)
		m.snapshot = m.store.Snapshot()
		m.currentView = ViewSubjects
		m.subjectRow = 0
		return m, tea.Batch(m.fetchSubjectsCmd(course.ID), m.spinner.Tick)

	case key.Matches(msg, m.keys.Add):
		m.modal = m.newCourseForm()
		return m, m.modal.(*formModal).Focus()

	case key.Matches(msg, m.keys.Delete):
		if m.courseRow >= len(courses) {
			return m, nil
		}
		course := courses[m.courseRow]
		m.modal = newConfirmModal(
			"Delete course \""+course.Name+"\"?",
			tea.Batch(m.deleteCourseCmd(course.ID), m.spinner.Tick),
		)
		return m, nil
	}

	return m, nil
}

func (m Model) handleSubjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	subjects := m.snapshot.Subjects

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.subjectRow < len(subjects)-1 {
			m.subjectRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.subjectRow > 0 {
			m.subjectRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.subjectRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(subjects) > 0 {
			m.subjectRow = len(subjects) - 1
		}

	case key.Matches(msg, m.keys.Open):
		if m.subjectRow >= len(subjects) {
			return m, nil
		}
		subject := subjects[m.subjectRow]
		m.store.SetCurrentSubject(&subject)
		m.snapshot = m.store.Snapshot()
		m.currentView = ViewContents
		m.contentRow = 0
		m.selectedContentID = ""
		return m, tea.Batch(m.fetchContentsCmd(subject.ID), m.spinner.Tick)

	case key.Matches(msg, m.keys.Add):
		if course := m.snapshot.CurrentCourse; course != nil {
			m.modal = m.newSubjectForm(course.ID)
			return m, m.modal.(*formModal).Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.subjectRow >= len(subjects) {
			return m, nil
		}
		subject := subjects[m.subjectRow]
		m.modal = newConfirmModal(
			"Delete subject \""+subject.Name+"\"?",
			tea.Batch(m.deleteSubjectCmd(subject.ID), m.spinner.Tick),
		)
		return m, nil
	}

	return m, nil
}

func (m Model) handleContentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	contents := m.snapshot.Contents

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.contentRow < len(contents)-1 {
			m.contentRow++
			m.selectedContentID = contents[m.contentRow].ID
			m.updateBody()
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.contentRow > 0 {
			m.contentRow--
			m.selectedContentID = contents[m.contentRow].ID
			m.updateBody()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		if len(contents) > 0 {
			m.contentRow = 0
			m.selectedContentID = contents[0].ID
			m.updateBody()
		}
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		if len(contents) > 0 {
			m.contentRow = len(contents) - 1
			m.selectedContentID = contents[m.contentRow].ID
			m.updateBody()
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if subject := m.snapshot.CurrentSubject; subject != nil {
			m.modal = m.newContentForm(subject.ID, nil)
			return m, m.modal.(*formModal).Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.contentRow < len(contents) {
			content := contents[m.contentRow]
			if subject := m.snapshot.CurrentSubject; subject != nil {
				m.modal = m.newContentForm(subject.ID, &content)
				return m, m.modal.(*formModal).Focus()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.contentRow < len(contents) {
			content := contents[m.contentRow]
			m.modal = newConfirmModal(
				"Delete content \""+content.Title+"\"?",
				tea.Batch(m.deleteContentCmd(content.ID), m.spinner.Tick),
			)
		}
		return m, nil
	}

	// Remaining keys scroll the body pane.
	var cmd tea.Cmd
	m.bodyViewport, cmd = m.bodyViewport.Update(msg)
	return m, cmd
}

// syncSelection clamps the cursor rows to the fresh collections and
// applies the first-content default selection.
func (m *Model) syncSelection() {
	if n := len(m.snapshot.Courses); m.courseRow >= n {
		m.courseRow = max(0, n-1)
	}
	if n := len(m.snapshot.Subjects); m.subjectRow >= n {
		m.subjectRow = max(0, n-1)
	}

	contents := m.snapshot.Contents
	if len(contents) == 0 {
		m.contentRow = 0
		m.selectedContentID = ""
		m.updateBody()
		return
	}

	if m.selectedContentID != "" {
		for i := range contents {
			if contents[i].ID == m.selectedContentID {
				m.contentRow = i
				m.updateBody()
				return
			}
		}
	}

	// Nothing selected yet (or the selection vanished): default to the
	// first item of the freshly loaded collection.
	m.contentRow = 0
	m.selectedContentID = contents[0].ID
	m.updateBody()
}

// Messages

// opResultMsg reports a finished store operation. err and errText cover
// the failure path; notice is the footer message on success.
type opResultMsg struct {
	err     error
	errText string
	notice  string
}

// Commands

func (m Model) fetchCoursesCmd() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return opResultMsg{err: store.FetchCourses(ctx)}
	}
}

func (m Model) fetchSubjectsCmd(courseID string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return opResultMsg{err: store.FetchSubjects(ctx, courseID)}
	}
}

func (m Model) fetchContentsCmd(subjectID string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return opResultMsg{err: store.FetchContents(ctx, subjectID)}
	}
}

func (m Model) createCourseCmd(name, imagePath string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		image, err := loadOptionalAttachment(imagePath)
		if err != nil {
			return opResultMsg{err: err, errText: err.Error()}
		}
		if err := store.CreateCourse(ctx, name, image); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{notice: "Course created"}
	}
}

func (m Model) createSubjectCmd(name, courseID, imagePath string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		image, err := loadOptionalAttachment(imagePath)
		if err != nil {
			return opResultMsg{err: err, errText: err.Error()}
		}
		if err := store.CreateSubject(ctx, name, courseID, image); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{notice: "Subject created"}
	}
}

func (m Model) saveContentCmd(contentID string, form notesapi.ContentForm, pdfPath, imagePath string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		pdf, err := loadOptionalAttachment(pdfPath)
		if err != nil {
			return opResultMsg{err: err, errText: err.Error()}
		}
		image, err := loadOptionalAttachment(imagePath)
		if err != nil {
			return opResultMsg{err: err, errText: err.Error()}
		}
		form.PDF = pdf
		form.Image = image

		if contentID == "" {
			if err := store.CreateContent(ctx, form); err != nil {
				return opResultMsg{err: err}
			}
			return opResultMsg{notice: "Content created"}
		}
		if err := store.UpdateContent(ctx, contentID, form); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{notice: "Content updated"}
	}
}

func (m Model) deleteCourseCmd(id string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if err := store.DeleteCourse(ctx, id); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{notice: "Course deleted"}
	}
}

func (m Model) deleteSubjectCmd(id string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if err := store.DeleteSubject(ctx, id); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{notice: "Subject deleted"}
	}
}

func (m Model) deleteContentCmd(id string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if err := store.DeleteContent(ctx, id); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{notice: "Content deleted"}
	}
}

func loadOptionalAttachment(path string) (*notesapi.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	return notesapi.LoadAttachment(path)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
