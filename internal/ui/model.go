package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/roster/internal/services"
)

// InputMode says where key presses go.
type InputMode int

const (
	Browsing InputMode = iota
	Searching
	ChoosingFile
)

// Model represents the TUI application state.
//
// Every API call runs as a [tea.Cmd]; its result comes back as a [Msg] and is applied to the [RecordState].
type Model struct {
	ctx    context.Context
	svc    services.RecordService
	state  *RecordState
	mode   InputMode
	width  int
	height int
	list   list.Model
	input  textinput.Model
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model backed by svc.
func NewModel(ctx context.Context, svc services.RecordService, importMode string) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Employee Records"
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	input := textinput.New()
	input.Cursor.SetMode(cursor.CursorStatic)

	return &Model{
		ctx:   ctx,
		svc:   svc,
		state: NewRecordState(importMode),
		mode:  Browsing,
		list:  l,
		input: input,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// State exposes the view model.
func (m *Model) State() *RecordState {
	return m.state
}

// Mode reports where key presses currently go.
func (m *Model) Mode() InputMode {
	return m.mode
}

// Init starts the initial fetch.
func (m *Model) Init() tea.Cmd {
	m.state.BeginLoad()
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(msg.Width-4, 0), max(msg.Height-10, 0))
		m.input.Width = max(msg.Width-20, 10)
		return m, nil

	case Msg:
		m.apply(msg)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case Searching:
			return m.handleSearchKeys(msg)
		case ChoosingFile:
			return m.handleFileKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) apply(msg Msg) {
	switch msg.kind {
	case MsgRecordsLoaded:
		d := msg.data.(loadedData)
		m.state.ApplyLoaded(d.records, d.err)
	case MsgRecordDeleted:
		d := msg.data.(deletedData)
		m.state.ApplyDeleted(d.id, d.err)
	case MsgRecordsBulkDeleted:
		d := msg.data.(bulkDeletedData)
		m.state.ApplyBulkDeleted(d.ids, d.skipped, d.deleted, d.err)
	case MsgRecordsImported:
		d := msg.data.(importedData)
		m.state.ApplyImported(d.records, d.err)
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.current(); ok {
			m.state.ToggleSelect(item.record.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.toggleAll):
		m.state.ToggleSelectAll()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.level):
		m.state.CycleLevel()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.search):
		m.mode = Searching
		m.input.Placeholder = "name or position"
		m.input.SetValue(m.state.Search())
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.upload):
		m.mode = ChoosingFile
		m.input.Placeholder = "path/to/records.xlsx"
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.remove):
		if item, ok := m.current(); ok {
			return m, m.delete(item.record.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.bulkRemove):
		if ids, ok := m.state.RequireSelection(); ok {
			return m, m.bulkDelete(ids)
		}
		return m, nil

	case key.Matches(msg, m.keys.reload):
		m.state.BeginLoad()
		return m, m.load()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back, m.keys.submit) {
		m.mode = Browsing
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetSearch(m.input.Value())
	m.refresh()
	return m, cmd
}

func (m *Model) handleFileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.mode = Browsing
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		path := m.input.Value()
		m.mode = Browsing
		m.input.Blur()
		if !m.state.RequireFile(path) {
			return m, nil
		}
		return m, m.importFile(path)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh rebuilds the list from the filtered records.
func (m *Model) refresh() {
	m.list.SetItems(items(m.state))
}

func (m *Model) current() (recordItem, bool) {
	item, ok := m.list.SelectedItem().(recordItem)
	return item, ok
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		records, err := m.svc.List(m.ctx)
		return recordsLoadedMsg(records, err)
	}
}

func (m *Model) delete(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.Delete(m.ctx, id)
		return recordDeletedMsg(id, err)
	}
}

func (m *Model) bulkDelete(ids []string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.svc.BulkDelete(m.ctx, ids)
		if err != nil {
			return recordsBulkDeletedMsg(ids, nil, 0, err)
		}
		return recordsBulkDeletedMsg(ids, result.SkippedIDs, result.DeletedCount, nil)
	}
}

func (m *Model) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return recordsImportedMsg(nil, err)
		}
		defer f.Close()

		records, err := m.svc.Import(m.ctx, filepath.Base(path), f)
		return recordsImportedMsg(records, err)
	}
}

// View renders the record list, the active input, and the latest notice.
func (m *Model) View() string {
	var b strings.Builder

	switch m.state.Phase() {
	case Loading:
		b.WriteString(styles.title.Render("Loading records..."))
		b.WriteString("\n")
	case Idle:
		b.WriteString(styles.warn.Render("Records not loaded. Press r to retry."))
		b.WriteString("\n")
	}

	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.renderFilter())

	switch m.mode {
	case Searching:
		b.WriteString("\nSearch: " + m.input.View())
	case ChoosingFile:
		b.WriteString("\nImport file: " + m.input.View())
	}

	if n := m.state.Notice(); n != nil {
		b.WriteString("\n" + styles.Notice(n))
	}

	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderFilter() string {
	level := m.state.Level()
	if level == "" {
		level = "any"
	}

	return styles.help.Render(fmt.Sprintf(
		"search %q • level %s • showing %d of %d • %d selected",
		m.state.Search(),
		level,
		len(m.state.Filtered()),
		len(m.state.Records()),
		m.state.SelectionSize(),
	))
}
