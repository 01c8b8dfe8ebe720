package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/steamdex/internal/cache"
	"github.com/desertthunder/steamdex/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	cache        *cache.Cache
	width        int
	height       int
	searchInput  textinput.Model
	resultList   list.Model
	selected     *models.AppRecord
	achievements []models.AchievementDefinition
	dlc          []models.DlcEntry
	loading      bool
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model over an initialized cache.
func NewModel(ctx context.Context, c *cache.Cache) *Model {
	input := textinput.New()
	input.Placeholder = "game name"
	input.Focus()

	return &Model{
		ctx:         ctx,
		view:        SearchView,
		cache:       c,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultListView:
			return m.handleResultListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case resultsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.records))
		for i, rec := range msg.records {
			items[i] = appItem{record: rec}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for '%s'", msg.query)
		m.resultList.SetSize(m.width-4, m.height-8)
		m.view = ResultListView
		return m, nil

	case detailFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultListView
			return m, nil
		}
		m.achievements = msg.achievements
		m.dlc = msg.dlc
		m.view = DetailView
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == SearchView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultListView:
		return m.renderResultList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		query := m.searchInput.Value()
		if query != "" {
			return m, m.search(query)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SearchView
		m.err = nil
		return m, nil
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(appItem); ok {
				record := item.record
				m.selected = &record
				m.loading = true
				return m, m.fetchDetail(false)
			}
		}
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ResultListView
		m.selected = nil
		m.achievements = nil
		m.dlc = nil
		return m, nil
	case "s":
		m.loading = true
		return m, m.fetchDetail(true)
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case ResultListView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		records, err := m.cache.SearchByName(query)
		return resultsFetchedMsg{query: query, records: records, err: err}
	}
}

func (m *Model) fetchDetail(useSecondary bool) tea.Cmd {
	record := m.selected
	return func() tea.Msg {
		achievements, err := m.cache.Achievements(m.ctx, record)
		if err != nil {
			return detailFetchedMsg{err: err}
		}

		dlc, err := m.cache.Dlc(m.ctx, record, useSecondary)
		if err != nil {
			return detailFetchedMsg{err: err}
		}

		return detailFetchedMsg{achievements: achievements, dlc: dlc}
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search cached games")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.searchInput.View(), helpView)
}

func (m *Model) renderResultList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	body := m.resultList.View()
	if m.err != nil {
		body = fmt.Sprintf("%s\n%s", styles.warn.Render(fmt.Sprintf("lookup failed: %v", m.err)), body)
	}
	if m.loading {
		body = fmt.Sprintf("%s\n%s", body, styles.help.Render("loading..."))
	}
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}

func (m *Model) renderDetail() string {
	title := styles.title.Render(fmt.Sprintf("%s (appid %d)", m.selected.Name, m.selected.ID))

	achievements := styles.ok.Render(fmt.Sprintf("Achievements (%d)", len(m.achievements)))
	limit := min(len(m.achievements), 10)
	for _, def := range m.achievements[:limit] {
		achievements += fmt.Sprintf("\n  %s", def.DisplayName)
	}
	if len(m.achievements) > limit {
		achievements += styles.help.Render(fmt.Sprintf("\n  … %d more", len(m.achievements)-limit))
	}

	dlc := styles.ok.Render(fmt.Sprintf("DLC (%d)", len(m.dlc)))
	for _, entry := range m.dlc {
		dlc += fmt.Sprintf("\n  %d  %s", entry.ID, entry.Name)
	}

	helpKeys := []key.Binding{m.keys.steamdb, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, achievements, dlc, helpView)
}
