package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"navimport/internal/models"
	"navimport/internal/services"
	"navimport/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ConfirmView
	JobView
	RecentView
)

// ModelOpts configures the TUI model. Zero values use the component defaults.
type ModelOpts struct {
	Debounce     time.Duration
	MinQuery     int
	PollInterval time.Duration
	Logger       *log.Logger
}

// Model represents the TUI application state.
//
// The orchestration components own their state behind mutexes; the model only
// keeps render copies, refreshed whenever an event arrives.
type Model struct {
	ctx       context.Context
	view      ViewState
	svc       services.Service
	events    chan tasks.Event
	search    *tasks.SearchController
	store     *tasks.SelectionStore
	submitter *tasks.ImportSubmitter
	tracker   *tasks.JobTracker

	width        int
	height       int
	input        textinput.Model
	inputFocused bool
	resultList   list.Model
	recentList   list.Model
	recent       []models.Job
	searchErr    string
	loading      bool
	submitting   bool
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model wired to the given backend service.
func NewModel(ctx context.Context, svc services.Service, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	events := make(chan tasks.Event, 50)
	store := tasks.NewSelectionStore()

	input := textinput.New()
	input.Placeholder = "Search albums and songs"
	input.Focus()

	resultList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	resultList.Title = "Results"
	resultList.SetShowHelp(false)
	resultList.SetFilteringEnabled(false)

	recentList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	recentList.Title = "Recent Jobs"
	recentList.SetShowHelp(false)

	m := &Model{
		ctx:          ctx,
		view:         SearchView,
		svc:          svc,
		events:       events,
		store:        store,
		input:        input,
		inputFocused: true,
		resultList:   resultList,
		recentList:   recentList,
		help:         help.New(),
		keys:         newKeyMap(),
	}

	m.search = tasks.NewSearchController(ctx, svc, tasks.SearchOpts{
		Debounce: opts.Debounce,
		MinQuery: opts.MinQuery,
		Events:   events,
		Logger:   opts.Logger,
	})
	m.submitter = tasks.NewImportSubmitter(svc, store, opts.Logger)
	m.tracker = tasks.NewJobTracker(svc, tasks.TrackerOpts{
		Interval: opts.PollInterval,
		Events:   events,
		Logger:   opts.Logger,
	})

	return m
}

// Close tears down the background components once the program exits.
func (m *Model) Close() {
	m.search.Close()
	m.tracker.Clear()
}

// Init starts the cursor blink and the event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultList.SetSize(msg.Width-4, msg.Height-10)
		m.recentList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case JobView:
			return m.handleJobKeys(msg)
		case RecentView:
			return m.handleRecentKeys(msg)
		}

	case eventMsg:
		return m.handleEvent(tasks.Event(msg))

	case importSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.view = SearchView
			return m, nil
		}
		m.err = nil
		m.tracker.Track(m.ctx, msg.jobID)
		m.view = JobView
		return m, nil

	case recentFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.recent = msg.jobs
		items := make([]list.Item, len(msg.jobs))
		for i, job := range msg.jobs {
			items[i] = jobItem{job: job}
		}
		m.recentList.SetItems(items)
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ConfirmView:
		return m.renderConfirm()
	case JobView:
		return m.renderJob()
	case RecentView:
		return m.renderRecent()
	default:
		return ""
	}
}

func (m *Model) handleEvent(ev tasks.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case tasks.SearchStarted, tasks.SearchUpdated:
		results, loading, lastErr := m.search.Snapshot()
		m.loading = loading
		m.searchErr = lastErr
		items := make([]list.Item, len(results))
		for i, r := range results {
			items[i] = resultItem{item: r, selected: m.store.Selected}
		}
		m.resultList.SetItems(items)
		return m, m.waitForEvent()

	case tasks.JobUpdated:
		return m, m.waitForEvent()

	case tasks.JobFinished:
		return m, tea.Batch(m.fetchRecent(), m.waitForEvent())
	}

	return m, m.waitForEvent()
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.inputFocused = !m.inputFocused
		if m.inputFocused {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil
	}

	if m.inputFocused {
		if msg.String() == "enter" {
			m.inputFocused = false
			m.input.Blur()
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.search.SetQuery(v)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.inputFocused = true
		m.input.Focus()
		return m, nil
	case " ":
		if selected := m.resultList.SelectedItem(); selected != nil {
			if ri, ok := selected.(resultItem); ok {
				m.store.Toggle(ri.item)
			}
		}
		return m, nil
	case "enter":
		if m.store.Len() > 0 {
			m.err = nil
			m.view = ConfirmView
		}
		return m, nil
	case "r":
		m.view = RecentView
		return m, m.fetchRecent()
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = SearchView
		return m, nil
	case "y":
		m.submitting = true
		return m, m.submitSelection()
	}
	return m, nil
}

func (m *Model) handleJobKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = RecentView
		return m, m.fetchRecent()
	case "esc", "s":
		m.view = SearchView
		m.inputFocused = true
		m.input.Focus()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleRecentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SearchView
		m.inputFocused = true
		m.input.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.recentList, cmd = m.recentList.Update(msg)
	return m, cmd
}

func (m *Model) submitSelection() tea.Cmd {
	return func() tea.Msg {
		jobID, err := m.submitter.Submit(m.ctx)
		return importSubmittedMsg{jobID: jobID, err: err}
	}
}

func (m *Model) fetchRecent() tea.Cmd {
	return func() tea.Msg {
		jobs, err := m.svc.ListJobs(m.ctx)
		return recentFetchedMsg{jobs: jobs, err: err}
	}
}

// waitForEvent pumps the next component event into the Update loop.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Import Music")

	status := ""
	if m.loading {
		status = styles.help.Render("searching...")
	} else if m.searchErr != "" {
		status = styles.warn.Render(m.searchErr)
	}
	if m.err != nil {
		status = styles.err.Render(m.err.Error())
	}

	selection := ""
	if n := m.store.Len(); n > 0 {
		selection = styles.ok.Render(fmt.Sprintf("%d selected", n))
	}

	helpKeys := []key.Binding{m.keys.toggle, m.keys.enter, m.keys.recent, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n%s\n%s", title, m.input.View(), status, m.resultList.View(), selection, helpView)
}

func (m *Model) renderConfirm() string {
	entries := m.store.List()
	title := styles.title.Render(fmt.Sprintf("Import %d album(s)?", len(entries)))

	body := ""
	for i, e := range entries {
		body += fmt.Sprintf("%d. %s - %s\n", i+1, e.Artist, e.Title)
	}

	if m.submitting {
		body += "\n" + styles.help.Render("submitting...")
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, body, helpView)
}

func (m *Model) renderJob() string {
	state, job := m.tracker.Snapshot()

	title := styles.title.Render("Import Job")
	if job == nil {
		return fmt.Sprintf("%s\n%s", title, styles.help.Render("waiting for first update..."))
	}

	var status string
	switch {
	case job.Status == models.StatusCompleted:
		status = styles.ok.Render("✓ Completed")
	case job.Status == models.StatusFailed:
		status = styles.err.Render("✗ Failed: " + job.Message)
	case state == tasks.Polling:
		status = fmt.Sprintf("%s (%s) %.0f%%", job.Status, job.Phase, job.Progress*100)
	default:
		status = job.Status
	}

	album := ""
	if job.Album != "" {
		album = fmt.Sprintf("\n%s - %s", job.Artist, job.Album)
	}

	helpKeys := []key.Binding{m.keys.recent, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n\n%s\n\n%s", title, album, status, helpView)
}

func (m *Model) renderRecent() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.recentList.View(), helpView)
}
