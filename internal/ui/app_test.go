package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lectern/internal/model"
	"lectern/internal/state"
)

func testModel(snapshot state.Snapshot) Model {
	return Model{
		keys:     DefaultKeyMap(),
		theme:    GetTheme(false),
		snapshot: snapshot,
	}
}

func pressKey(t *testing.T, m Model, k string) Model {
	t.Helper()
	updated, _ := m.handleKey(keyPress(k))
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("handleKey returned %T, want Model", updated)
	}
	return next
}

func TestCourseKeysMoveCursor(t *testing.T) {
	m := testModel(state.Snapshot{Courses: []model.Course{
		{ID: "1", Name: "Algebra"},
		{ID: "2", Name: "History"},
		{ID: "3", Name: "Physics"},
	}})

	m = pressKey(t, m, "j")
	m = pressKey(t, m, "j")
	if m.courseRow != 2 {
		t.Fatalf("courseRow = %d after j j, want 2", m.courseRow)
	}
	m = pressKey(t, m, "k")
	if m.courseRow != 1 {
		t.Fatalf("courseRow = %d after k, want 1", m.courseRow)
	}
	m = pressKey(t, m, "G")
	if m.courseRow != 2 {
		t.Fatalf("courseRow = %d after G, want 2", m.courseRow)
	}
	m = pressKey(t, m, "g")
	if m.courseRow != 0 {
		t.Fatalf("courseRow = %d after g, want 0", m.courseRow)
	}

	// Arrow keys share the bindings.
	m = pressKey(t, m, "down")
	if m.courseRow != 1 {
		t.Fatalf("courseRow = %d after down, want 1", m.courseRow)
	}
}

func TestHelpKeyOpensOverlayAndAnyKeyCloses(t *testing.T) {
	m := testModel(state.Snapshot{Courses: []model.Course{{ID: "1", Name: "Algebra"}}})

	m = pressKey(t, m, "h")
	if !m.showHelp {
		t.Fatalf("showHelp = false after h, want true")
	}

	m = pressKey(t, m, "j")
	if m.showHelp {
		t.Fatalf("showHelp still true after a key press, want closed")
	}
	if m.courseRow != 0 {
		t.Fatalf("courseRow = %d, want the closing key swallowed", m.courseRow)
	}
}

func TestQuitKeyReturnsCommand(t *testing.T) {
	m := testModel(state.Snapshot{})

	_, cmd := m.handleKey(keyPress("q"))
	if cmd == nil {
		t.Fatalf("q returned no command, want quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("q command produced %#v, want tea.QuitMsg", msg)
	}
}

func TestRenderHelpReflectsKeymap(t *testing.T) {
	m := testModel(state.Snapshot{})
	m.width = 80
	m.height = 24

	out := m.renderHelp()
	for _, want := range []string{"Keyboard Shortcuts", "Toggle dark mode", "Move up", "esc"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help overlay missing %q:\n%s", want, out)
		}
	}
}

func contentSnapshot() state.Snapshot {
	return state.Snapshot{Contents: []model.Content{
		{ID: "20", Title: "Intro", SubjectID: "10"},
		{ID: "21", Title: "Epsilon", SubjectID: "10"},
		{ID: "22", Title: "Delta", SubjectID: "10"},
	}}
}

func TestSyncSelectionDefaultsToFirstContent(t *testing.T) {
	m := testModel(contentSnapshot())

	m.syncSelection()

	if m.contentRow != 0 {
		t.Fatalf("contentRow = %d, want 0 for a fresh collection", m.contentRow)
	}
	if m.selectedContentID != "20" {
		t.Fatalf("selectedContentID = %q, want the first item", m.selectedContentID)
	}
}

func TestSyncSelectionFollowsSelectionAcrossRefetch(t *testing.T) {
	m := testModel(contentSnapshot())
	m.selectedContentID = "21"
	m.contentRow = 2 // stale row from before the refetch

	m.syncSelection()

	if m.contentRow != 1 {
		t.Fatalf("contentRow = %d, want 1 for the selected id", m.contentRow)
	}
	if m.selectedContentID != "21" {
		t.Fatalf("selectedContentID = %q, want kept", m.selectedContentID)
	}
}

func TestSyncSelectionFallsBackWhenSelectionVanishes(t *testing.T) {
	m := testModel(contentSnapshot())
	m.selectedContentID = "99"
	m.contentRow = 2

	m.syncSelection()

	if m.contentRow != 0 || m.selectedContentID != "20" {
		t.Fatalf("selection = row %d id %q, want first item after the old one vanished",
			m.contentRow, m.selectedContentID)
	}
}

func TestSyncSelectionClearsOnEmptyCollection(t *testing.T) {
	m := testModel(state.Snapshot{})
	m.selectedContentID = "20"
	m.contentRow = 1

	m.syncSelection()

	if m.contentRow != 0 || m.selectedContentID != "" {
		t.Fatalf("selection = row %d id %q, want cleared for an empty collection",
			m.contentRow, m.selectedContentID)
	}
}

func TestSyncSelectionClampsListRows(t *testing.T) {
	m := testModel(state.Snapshot{
		Courses:  []model.Course{{ID: "1"}, {ID: "2"}},
		Subjects: []model.Subject{{ID: "10"}},
	})
	m.courseRow = 5
	m.subjectRow = 3

	m.syncSelection()

	if m.courseRow != 1 {
		t.Fatalf("courseRow = %d, want clamped to 1", m.courseRow)
	}
	if m.subjectRow != 0 {
		t.Fatalf("subjectRow = %d, want clamped to 0", m.subjectRow)
	}
}
