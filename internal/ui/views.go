package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lectern/internal/model"
)

const contentListWidth = 34

// renderMain renders the header, the active view, and the footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSubjects:
		return m.renderSubjects()
	case ViewContents:
		return m.renderContents()
	default:
		return m.renderCourses()
	}
}

// renderHeader renders the logo, the breadcrumb, and the loading state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("lectern")}

	crumb := "Courses"
	if course := m.snapshot.CurrentCourse; course != nil && m.currentView != ViewCourses {
		crumb += " › " + course.Name
	}
	if subject := m.snapshot.CurrentSubject; subject != nil && m.currentView == ViewContents {
		crumb += " › " + subject.Name
	}
	parts = append(parts, styles.Text.Render(crumb))

	if m.snapshot.Loading {
		parts = append(parts, styles.AccentText.Render(m.spinner.View()+"loading"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderFooter renders the error/notice slot and the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var status string
	switch {
	case m.snapshot.LastError != "":
		status = styles.DangerText.Render(m.snapshot.LastError)
	case m.notice != "":
		status = styles.SuccessText.Render(m.notice)
	}

	hints := m.footerHints()
	line := hints
	if status != "" {
		line = status + "  " + styles.FaintText.Render("•") + "  " + hints
	}
	return styles.Footer.Width(m.width).Render(line)
}

func (m Model) footerHints() string {
	styles := m.theme.Styles()
	var hints []string
	switch m.currentView {
	case ViewCourses:
		hints = []string{"enter open", "a add", "x delete", "r refresh", "D dark"}
	case ViewSubjects:
		hints = []string{"enter open", "a add", "x delete", "esc back"}
	default:
		hints = []string{"j/k select", "a add", "e edit", "x delete", "esc back"}
	}
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		hints = append(hints, help.Key+" "+strings.ToLower(help.Desc))
	}
	return styles.FaintText.Render(strings.Join(hints, "  "))
}

func (m Model) renderCourses() string {
	styles := m.theme.Styles()
	inner := m.width - 4
	rows := m.listHeight()

	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("Courses (%d)", len(m.snapshot.Courses)))

	lines := []string{title}
	if len(m.snapshot.Courses) == 0 {
		lines = append(lines, styles.MutedText.Render("No courses yet. Press a to add one."))
	}
	start := listWindow(m.courseRow, len(m.snapshot.Courses), rows-1)
	for i := start; i < len(m.snapshot.Courses) && i-start < rows-1; i++ {
		course := m.snapshot.Courses[i]
		label := truncate(course.Name, inner-6)
		if course.Image != "" {
			label += " " + styles.FaintText.Render("[img]")
		}
		lines = append(lines, m.listLine(label, inner, i == m.courseRow))
	}

	pane := styles.PaneFocus.Width(m.width - 2).Height(rows + 1)
	return pane.Render(strings.Join(lines, "\n"))
}

func (m Model) renderSubjects() string {
	styles := m.theme.Styles()
	inner := m.width - 4
	rows := m.listHeight()

	courseName := ""
	if course := m.snapshot.CurrentCourse; course != nil {
		courseName = course.Name
	}
	title := styles.AccentText.Bold(true).Render(
		fmt.Sprintf("Subjects of %s (%d)", courseName, len(m.snapshot.Subjects)))

	lines := []string{title}
	if len(m.snapshot.Subjects) == 0 {
		lines = append(lines, styles.MutedText.Render("No subjects yet. Press a to add one."))
	}
	start := listWindow(m.subjectRow, len(m.snapshot.Subjects), rows-1)
	for i := start; i < len(m.snapshot.Subjects) && i-start < rows-1; i++ {
		subject := m.snapshot.Subjects[i]
		label := truncate(subject.Name, inner-6)
		if subject.Image != "" {
			label += " " + styles.FaintText.Render("[img]")
		}
		lines = append(lines, m.listLine(label, inner, i == m.subjectRow))
	}

	pane := styles.PaneFocus.Width(m.width - 2).Height(rows + 1)
	return pane.Render(strings.Join(lines, "\n"))
}

// renderContents renders the content list pane next to the body pane.
func (m Model) renderContents() string {
	styles := m.theme.Styles()
	rows := m.listHeight()
	inner := contentListWidth - 4

	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("Contents (%d)", len(m.snapshot.Contents)))

	lines := []string{title}
	if len(m.snapshot.Contents) == 0 {
		lines = append(lines, styles.MutedText.Render("No contents yet."))
	}
	start := listWindow(m.contentRow, len(m.snapshot.Contents), rows-1)
	for i := start; i < len(m.snapshot.Contents) && i-start < rows-1; i++ {
		content := m.snapshot.Contents[i]
		label := truncate(content.Title, inner-10) + " " + styles.FaintText.Render(contentMarkers(content))
		lines = append(lines, m.listLine(label, inner, i == m.contentRow))
	}

	list := styles.Pane.Width(contentListWidth - 2).Height(rows + 1).
		Render(strings.Join(lines, "\n"))

	body := styles.PaneFocus.Width(m.width - contentListWidth - 2).Height(rows + 1).
		Render(m.bodyViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, list, body)
}

// contentMarkers summarizes which payloads a content item carries.
func contentMarkers(content model.Content) string {
	var marks []string
	if strings.TrimSpace(content.Body) != "" {
		marks = append(marks, "txt")
	}
	if content.PDF != "" {
		marks = append(marks, "pdf")
	}
	if content.Image != "" {
		marks = append(marks, "img")
	}
	if len(marks) == 0 {
		return ""
	}
	return "[" + strings.Join(marks, ",") + "]"
}

func (m Model) listLine(label string, width int, selected bool) string {
	styles := m.theme.Styles()
	if selected {
		return styles.Selected.Width(width).Render("▸ " + label)
	}
	return styles.Text.Render("  " + label)
}

// updateBody rebuilds the body viewport for the selected content item.
func (m *Model) updateBody() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()

	contents := m.snapshot.Contents
	if len(contents) == 0 || m.contentRow >= len(contents) {
		m.bodyViewport.SetContent(styles.MutedText.Render("Select a content item."))
		return
	}
	content := contents[m.contentRow]

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(content.Title))
	b.WriteString("\n\n")

	text := stripHTML(content.Body)
	if text != "" {
		wrap := lipgloss.NewStyle().Width(m.bodyWidth())
		b.WriteString(wrap.Render(styles.Text.Render(text)))
		b.WriteString("\n")
	}
	if content.PDF != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("PDF:   ") + styles.FaintText.Render(content.PDF))
		b.WriteString("\n")
	}
	if content.Image != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Image: ") + styles.FaintText.Render(content.Image))
		b.WriteString("\n")
	}
	if text == "" && content.PDF == "" && content.Image == "" {
		b.WriteString(styles.MutedText.Render("This content item is empty."))
	}

	m.bodyViewport.SetContent(b.String())
	m.bodyViewport.GotoTop()
}

func (m Model) bodyWidth() int {
	w := m.width - contentListWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) bodyHeight() int {
	h := m.listHeight() + 1
	if h < 3 {
		h = 3
	}
	return h
}

// listHeight is the number of rows available inside a pane, title
// excluded from the caller's budget.
func (m Model) listHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

// listWindow returns the first visible row so the selection stays on
// screen in lists taller than the pane.
func listWindow(selected, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	start := selected - visible + 1
	if start < 0 {
		start = 0
	}
	return start
}
