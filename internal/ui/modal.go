package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lectern/internal/model"
	"lectern/internal/notesapi"
)

// Modal is the interface for modal dialogs. Update returns the updated
// modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// formModal is a small vertical form of text inputs. The first field is
// required; submission is blocked locally while it is empty. A failed
// submit keeps the form open with the store's error message.
type formModal struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int

	errText    string
	submitting bool

	// requiredLabel names the first field in validation messages.
	requiredLabel string

	submit func(values []string) tea.Cmd
}

func newFormModal(title, requiredLabel string, labels []string, values []string, submit func([]string) tea.Cmd) *formModal {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		input := textinput.New()
		input.CharLimit = 0
		input.Width = 44
		if i < len(values) {
			input.SetValue(values[i])
		}
		inputs[i] = input
	}
	return &formModal{
		title:         title,
		labels:        labels,
		inputs:        inputs,
		requiredLabel: requiredLabel,
		submit:        submit,
	}
}

// Focus places the cursor on the first field.
func (f *formModal) Focus() tea.Cmd {
	return tea.Batch(f.inputs[0].Focus(), textinput.Blink)
}

// Update implements Modal.
func (f *formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	if key.Matches(keyMsg, keys.Back) {
		return f, nil, true
	}

	switch keyMsg.String() {
	case "tab", "down":
		return f.moveFocus(1)

	case "shift+tab", "up":
		return f.moveFocus(-1)

	case "enter":
		if f.focus < len(f.inputs)-1 {
			return f.moveFocus(1)
		}
		return f.trySubmit()

	case "ctrl+s":
		return f.trySubmit()
	}

	return f.updateFocused(msg)
}

func (f *formModal) updateFocused(msg tea.Msg) (Modal, tea.Cmd, bool) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f *formModal) moveFocus(delta int) (Modal, tea.Cmd, bool) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f, f.inputs[f.focus].Focus(), false
}

func (f *formModal) trySubmit() (Modal, tea.Cmd, bool) {
	if f.submitting {
		return f, nil, false
	}

	values := make([]string, len(f.inputs))
	for i := range f.inputs {
		values[i] = f.inputs[i].Value()
	}

	if strings.TrimSpace(values[0]) == "" {
		f.errText = f.requiredLabel + " is required"
		return f, nil, false
	}

	f.errText = ""
	f.submitting = true
	return f, f.submit(values), false
}

// View implements Modal.
func (f *formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(f.title))
	b.WriteString("\n\n")

	for i, label := range f.labels {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.Text.Bold(true)
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	if f.errText != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(f.errText))
		b.WriteString("\n")
	}
	if f.submitting {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter next  •  ctrl+s save  •  esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(52)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmModal asks for a yes/no before a destructive action. Errors
// from the confirmed command surface in the footer, not in the modal.
type confirmModal struct {
	prompt  string
	confirm tea.Cmd
}

func newConfirmModal(prompt string, confirm tea.Cmd) *confirmModal {
	return &confirmModal{prompt: prompt, confirm: confirm}
}

// Update implements Modal.
func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}

	if key.Matches(keyMsg, keys.Back) {
		return c, nil, true
	}

	switch keyMsg.String() {
	case "y", "enter":
		return c, c.confirm, true
	case "n":
		return c, nil, true
	}
	return c, nil, false
}

// View implements Modal.
func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y confirm  •  n cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// Form constructors. The submit closures capture the Model's command
// builders so the modals stay free of store knowledge.

func (m Model) newCourseForm() *formModal {
	return newFormModal(
		"New course",
		"Name",
		[]string{"Name", "Image path (optional)"},
		nil,
		func(values []string) tea.Cmd {
			return tea.Batch(
				m.createCourseCmd(values[0], strings.TrimSpace(values[1])),
				m.spinner.Tick,
			)
		},
	)
}

func (m Model) newSubjectForm(courseID string) *formModal {
	return newFormModal(
		"New subject",
		"Name",
		[]string{"Name", "Image path (optional)"},
		nil,
		func(values []string) tea.Cmd {
			return tea.Batch(
				m.createSubjectCmd(values[0], courseID, strings.TrimSpace(values[1])),
				m.spinner.Tick,
			)
		},
	)
}

// newContentForm builds the create form when existing is nil and the
// edit form otherwise.
func (m Model) newContentForm(subjectID string, existing *model.Content) *formModal {
	title := "New content"
	contentID := ""
	var values []string
	if existing != nil {
		title = "Edit content"
		contentID = existing.ID
		values = []string{existing.Title, existing.Body}
	}

	return newFormModal(
		title,
		"Title",
		[]string{"Title", "Text", "PDF path (optional)", "Image path (optional)"},
		values,
		func(v []string) tea.Cmd {
			form := notesapi.ContentForm{
				Title:     v[0],
				Text:      v[1],
				SubjectID: subjectID,
			}
			return tea.Batch(
				m.saveContentCmd(contentID, form, strings.TrimSpace(v[2]), strings.TrimSpace(v[3])),
				m.spinner.Tick,
			)
		},
	)
}
