package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tyrerec/internal/domain"
)

// RecommenderPort is the TUI-facing subset of the recommendation service.
type RecommenderPort interface {
	Recommend(q domain.Query) ([]domain.Recommendation, error)
	ModelsFor(brand string) ([]string, error)
	SubmodelsFor(model string) ([]string, error)
	ExpectedSizeFor(submodel string) (string, error)
	Brands() []string
	Types() []string
}

type field int

const (
	fieldBrand field = iota
	fieldModel
	fieldSubmodel
	fieldType
	fieldSize
	numFields
)

var fieldLabels = [numFields]string{"Vehicle Brand", "Vehicle Model", "Vehicle Submodel", "Tyre Type", "Expected Tyre Size"}

// defaultType is preselected when present in the catalog.
const defaultType = "Tubeless"

const promptStatus = "Select a vehicle and press Enter."

// selector is a read-only choice list; cursor -1 means nothing chosen.
type selector struct {
	options []string
	cursor  int
}

func (s selector) value() string {
	if s.cursor < 0 || s.cursor >= len(s.options) {
		return ""
	}
	return s.options[s.cursor]
}

func (s *selector) reset(options []string) {
	s.options = options
	s.cursor = -1
}

func (s *selector) move(delta int) bool {
	if len(s.options) == 0 {
		return false
	}
	next := s.cursor + delta
	if s.cursor < 0 {
		next = 0
		if delta < 0 {
			next = len(s.options) - 1
		}
	}
	next = (next + len(s.options)) % len(s.options)
	changed := next != s.cursor
	s.cursor = next
	return changed
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   RecommenderPort
	selectors [fieldSize]selector
	size      textinput.Model
	focus     field
	viewport  viewport.Model
	results   []domain.Recommendation
	status    string
	ready     bool
}

// New creates a new TUI model instance.
func New(service RecommenderPort) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "select a submodel or type a size"
	ti.CharLimit = 0

	m := Model{service: service, size: ti, viewport: viewport.New(0, 0), status: promptStatus}
	m.selectors[fieldBrand].reset(service.Brands())
	m.selectors[fieldModel].reset(nil)
	m.selectors[fieldSubmodel].reset(nil)
	m.selectors[fieldType].reset(service.Types())
	for i, t := range m.selectors[fieldType].options {
		if t == defaultType {
			m.selectors[fieldType].cursor = i
		}
	}
	if m.selectors[fieldType].cursor < 0 {
		m.selectors[fieldType].move(1)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		reserved := 2 + int(numFields) + 1 + 1 // header, form, status, spacer
		vh := msg.Height - reserved - rh
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			m.recommend()
			return m, nil
		case "tab", "down":
			m.setFocus((m.focus + 1) % numFields)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + numFields - 1) % numFields)
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "left", "right":
			if m.focus != fieldSize {
				delta := 1
				if msg.String() == "left" {
					delta = -1
				}
				if m.selectors[m.focus].move(delta) {
					m.cascade(m.focus)
				}
				return m, nil
			}
		}
	}
	if m.focus == fieldSize {
		var cmd tea.Cmd
		m.size, cmd = m.size.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(f field) {
	m.focus = f
	if f == fieldSize {
		m.size.Focus()
	} else {
		m.size.Blur()
	}
}

// cascade refreshes the controls that depend on the changed field.
func (m *Model) cascade(changed field) {
	switch changed {
	case fieldBrand:
		models, err := m.service.ModelsFor(m.selectors[fieldBrand].value())
		m.selectors[fieldModel].reset(models)
		m.selectors[fieldSubmodel].reset(nil)
		m.size.SetValue("")
		m.setCascadeStatus(err)
	case fieldModel:
		subs, err := m.service.SubmodelsFor(m.selectors[fieldModel].value())
		m.selectors[fieldSubmodel].reset(subs)
		m.size.SetValue("")
		m.setCascadeStatus(err)
	case fieldSubmodel:
		size, err := m.service.ExpectedSizeFor(m.selectors[fieldSubmodel].value())
		m.size.SetValue(size)
		m.setCascadeStatus(err)
	}
}

func (m *Model) setCascadeStatus(err error) {
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	if strings.HasPrefix(m.status, "Error: ") {
		m.status = promptStatus
	}
}

func (m *Model) recommend() {
	q := domain.Query{
		Brand:    m.selectors[fieldBrand].value(),
		Model:    m.selectors[fieldModel].value(),
		Submodel: m.selectors[fieldSubmodel].value(),
		Type:     m.selectors[fieldType].value(),
		Size:     strings.TrimSpace(m.size.Value()),
	}
	res, err := m.service.Recommend(q)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
	} else {
		m.status = fmt.Sprintf("%d recommendations for %s %s %s", len(res), q.Brand, q.Model, q.Submodel)
		m.results = res
	}
	m.viewport.SetContent(m.renderResults())
}

// View renders the form, the result table and the status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Tyre Recommendation System"))
	b.WriteString("\n\n")
	for f := fieldBrand; f < numFields; f++ {
		label := labelStyle.Render(fieldLabels[f] + ":")
		var value string
		if f == fieldSize {
			value = m.size.View()
		} else {
			value = "< " + placeholder(m.selectors[f].value()) + " >"
		}
		if f == m.focus {
			value = focusStyle.Render(value)
		}
		b.WriteString(label + " " + value + "\n")
	}
	b.WriteString(resultBoxStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(rowFormat, "Tyre Brand", "Size", "Selling Price", "Original Price", "Rating")))
	for _, r := range m.results {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(rowFormat, r.TyreBrand, r.Size,
			formatNumber(r.SellingPrice), formatNumber(r.OriginalPrice), formatNumber(r.Rating)))
	}
	return b.String()
}

const rowFormat = "%-16s %-14s %14s %14s %8s"

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func placeholder(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle     = lipgloss.NewStyle().Bold(true).Width(20)
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
