package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tyrerec/internal/domain"
)

type fakePort struct {
	queries   []domain.Query
	err       error
	modelsErr error
}

func (f *fakePort) Recommend(q domain.Query) ([]domain.Recommendation, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Recommendation{
		{TyreBrand: "MRF", Size: q.Size, SellingPrice: 1500, OriginalPrice: 1800, Rating: 4.25},
	}, nil
}

func (f *fakePort) ModelsFor(brand string) ([]string, error) {
	if f.modelsErr != nil {
		return nil, f.modelsErr
	}
	return map[string][]string{"Bajaj": {"Pulsar"}, "Honda": {"Activa", "Shine"}}[brand], nil
}

func (f *fakePort) SubmodelsFor(model string) ([]string, error) {
	return map[string][]string{"Activa": {"5G", "6G"}, "Shine": {"Drum"}}[model], nil
}

func (f *fakePort) ExpectedSizeFor(submodel string) (string, error) {
	return map[string]string{"5G": "90/90-12", "6G": "90/100-10"}[submodel], nil
}

func (f *fakePort) Brands() []string { return []string{"Bajaj", "Honda"} }
func (f *fakePort) Types() []string  { return []string{"Tube", "Tubeless"} }

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	right = tea.KeyMsg{Type: tea.KeyRight}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestNewPreselectsTubeless(t *testing.T) {
	m := New(&fakePort{})
	assert.Equal(t, "Tubeless", m.selectors[fieldType].value())
	assert.Equal(t, "", m.selectors[fieldBrand].value())
}

func TestCascadingSelection(t *testing.T) {
	port := &fakePort{}
	m := New(port)

	// brand: Bajaj -> Honda
	m = press(t, m, right, right)
	assert.Equal(t, "Honda", m.selectors[fieldBrand].value())
	assert.Equal(t, []string{"Activa", "Shine"}, m.selectors[fieldModel].options)
	assert.Equal(t, "", m.selectors[fieldModel].value())

	// model: Activa
	m = press(t, m, tab, right)
	assert.Equal(t, "Activa", m.selectors[fieldModel].value())
	assert.Equal(t, []string{"5G", "6G"}, m.selectors[fieldSubmodel].options)

	// submodel: 5G -> 6G fills the expected size
	m = press(t, m, tab, right, right)
	assert.Equal(t, "6G", m.selectors[fieldSubmodel].value())
	assert.Equal(t, "90/100-10", m.size.Value())

	m = press(t, m, enter)
	require.Len(t, port.queries, 1)
	assert.Equal(t, domain.Query{Brand: "Honda", Model: "Activa", Submodel: "6G", Type: "Tubeless", Size: "90/100-10"}, port.queries[0])
	require.Len(t, m.results, 1)
	assert.Contains(t, m.renderResults(), "MRF")
	assert.Contains(t, m.renderResults(), "4.25")
	assert.Contains(t, m.status, "1 recommendations")

	// changing brand clears the dependent fields
	m = press(t, m, tab, tab, tab, right)
	assert.Equal(t, fieldBrand, m.focus)
	assert.Equal(t, "Bajaj", m.selectors[fieldBrand].value())
	assert.Equal(t, "", m.selectors[fieldModel].value())
	assert.Empty(t, m.selectors[fieldSubmodel].options)
	assert.Equal(t, "", m.size.Value())
}

func TestRecommendErrorShownInStatus(t *testing.T) {
	port := &fakePort{err: &domain.UnknownCategoryError{Column: domain.Brand, Value: ""}}
	m := press(t, New(port), enter)
	assert.Nil(t, m.results)
	assert.Contains(t, m.status, "value not recognized")
	assert.Equal(t, "No results yet.", m.renderResults())
}

func TestCascadeErrorClearedOnSuccess(t *testing.T) {
	port := &fakePort{modelsErr: &domain.NoDataError{Column: domain.Brand, Value: "Bajaj"}}
	m := press(t, New(port), right)
	assert.Contains(t, m.status, "Error: no data for")

	port.modelsErr = nil
	m = press(t, m, right)
	assert.Equal(t, "Honda", m.selectors[fieldBrand].value())
	assert.Equal(t, promptStatus, m.status)
}

func TestSizeFieldAcceptsTyping(t *testing.T) {
	m := New(&fakePort{})
	m = press(t, m, tab, tab, tab, tab)
	require.Equal(t, fieldSize, m.focus)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("80/100-18")})
	assert.Equal(t, "80/100-18", m.size.Value())
}

func TestViewAfterResize(t *testing.T) {
	m := New(&fakePort{})
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	view := m.View()
	assert.Contains(t, view, "Vehicle Brand")
	assert.Contains(t, view, "Tubeless")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1500", formatNumber(1500))
	assert.Equal(t, "4.25", formatNumber(4.25))
}
