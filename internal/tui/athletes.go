package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/sportex/internal/binder"
	"github.com/naveenspark/sportex/pkg/domain"
)

type athleteField int

const (
	fieldSport athleteField = iota
	fieldPosition
	fieldLocation
	fieldStatKey
	fieldStatValue
	numAthleteFields
)

var athleteFieldLabels = [numAthleteFields]struct{ label, placeholder string }{
	{"Sport", "basketball"},
	{"Position", "guard"},
	{"Location", "city"},
	{"Stat", "ppg"},
	{"Min", "20"},
}

type athleteResults = *domain.SearchResult[domain.Athlete]

type athletesModel struct {
	results   *binder.Binding[domain.AthleteFilter, athleteResults]
	fields    [numAthleteFields]string
	submitted domain.AthleteFilter
	focus     athleteField
	editing   bool
	cursor    int
	width     int
	height    int
}

func newAthletesModel(api API, log *zap.Logger) athletesModel {
	fetch := func(ctx context.Context, f domain.AthleteFilter) (athleteResults, error) {
		return api.SearchAthletes(ctx, f)
	}
	return athletesModel{
		results: binder.New("athletes", fetch, binder.WithLogger(log)),
	}
}

// mount binds the last submitted filter. The form starts empty, so the first
// visit lists every athlete.
func (m athletesModel) mount() tea.Cmd {
	return m.results.Bind(m.submitted)
}

func (m athletesModel) unmount() {
	m.results.Unbind()
}

func (m athletesModel) filter() domain.AthleteFilter {
	trim := func(f athleteField) string { return strings.TrimSpace(m.fields[f]) }
	return domain.AthleteFilter{
		Sport:     trim(fieldSport),
		Position:  trim(fieldPosition),
		Location:  trim(fieldLocation),
		StatKey:   trim(fieldStatKey),
		StatValue: trim(fieldStatValue),
	}
}

// search always issues a request: a changed filter rebinds, an unchanged one
// refreshes.
func (m athletesModel) search() (athletesModel, tea.Cmd) {
	m.submitted = m.filter()
	m.editing = false
	m.cursor = 0
	cmd := m.results.Bind(m.submitted)
	if cmd == nil {
		cmd = m.results.Refresh()
	}
	return m, cmd
}

func (m athletesModel) Update(msg tea.Msg) (athletesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case binder.Result[athleteResults]:
		if m.results.Apply(msg) {
			m.cursor = min(m.cursor, max(m.count()-1, 0))
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "/":
			m.editing = true
		case "r":
			return m, m.results.Refresh()
		case "j", "down":
			if m.cursor < m.count()-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m athletesModel) updateForm(msg tea.KeyMsg) (athletesModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.search()
	case "esc":
		m.editing = false
	case "tab", "down":
		m.focus = (m.focus + 1) % numAthleteFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numAthleteFields) % numAthleteFields
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	}
	return m, nil
}

func (m athletesModel) count() int {
	if r := m.results.Data(); r != nil {
		return r.Len()
	}
	return 0
}

func (m athletesModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeader("Athletes") + "\n\n")

	for f := athleteField(0); f < numAthleteFields; f++ {
		field := athleteFieldLabels[f]
		b.WriteString(renderField(field.label, m.fields[f], field.placeholder, m.editing && m.focus == f, false) + "\n")
	}
	b.WriteString("\n")

	data := m.results.Data()
	switch m.results.State() {
	case binder.Loading:
		if data == nil {
			b.WriteString(" " + dimStyle.Render("searching...") + "\n")
			return b.String()
		}
	case binder.Failed:
		b.WriteString(errorLine("search failed", m.results.Err()) + "\n")
		if data == nil {
			return b.String()
		}
	}
	if data == nil {
		return b.String()
	}
	if data.Len() == 0 {
		b.WriteString(" " + dimStyle.Render("No athletes match this search.") + "\n")
		return b.String()
	}

	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d of %d", data.Len(), data.Total)) + "\n\n")
	for i, a := range data.Results {
		b.WriteString(m.renderCard(a, i == m.cursor))
	}
	return b.String()
}

func (m athletesModel) renderCard(a domain.Athlete, selected bool) string {
	title := normalStyle.Render(a.Title())
	prefix := "   "
	if selected {
		title = selectedStyle.Render(a.Title())
		prefix = " " + accentStyle.Render("▸") + " "
	}
	line := prefix + title + "  " + sportStyle.Render(a.Sport)
	if a.Location != "" {
		line += metaStyle.Render(" · " + a.Location)
	}
	out := line + "\n"
	if a.Stats != nil {
		out += "     " + dimStyle.Render(fmt.Sprintf("PPG: %s • APG: %s", formatStat(a, "ppg"), formatStat(a, "apg"))) + "\n"
	}
	if selected {
		return selectedRowBg.Render(strings.TrimRight(out, "\n")) + "\n"
	}
	return out
}
