// Package tui is the interactive front end: a Bubble Tea program whose
// list view renders from the store and whose key handlers create actions.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/idilsaglam/todoterm/internal/actions"
	"github.com/idilsaglam/todoterm/internal/api"
	"github.com/idilsaglam/todoterm/internal/cache"
	"github.com/idilsaglam/todoterm/internal/model"
	"github.com/idilsaglam/todoterm/internal/store"
)

// listItem adapts a model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) TitleText() string {
	box := boxUnchecked
	if i.Done {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Item.Title)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Item.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	box := mutedStyle.Render(boxUnchecked)
	text := it.Item.Title
	if it.Done {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	line := fmt.Sprintf("%s %s", box, text)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// messages flowing back into Update
type (
	fetchDoneMsg     struct{ err error }
	serverChangedMsg struct{}
)

type Model struct {
	store  *store.Store
	client *api.Client

	list list.Model
	spin spinner.Model

	fetching bool
	status   string

	width, height int

	cachePath string
}

// NewModel builds the TUI around an existing store and API client.
func NewModel(s *store.Store, c *api.Client, cachePath string) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = titleStyle.Render("Todos")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	// Extend help with our bindings
	reloadBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{reloadBind, deleteBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{reloadBind, deleteBind} }

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		store:     s,
		client:    c,
		list:      l,
		spin:      sp,
		cachePath: cachePath,
		width:     80,
		height:    24,
	}
}

// fetchCmd is the async action creator wrapped as a Bubble Tea command:
// retrieve, dispatch on success, report the outcome as a message. Each
// invocation is an independent in-flight request; rapid reloads are not
// deduplicated.
func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := actions.FetchList(ctx, m.client, m.store); err != nil {
			return fetchDoneMsg{err: err}
		}
		if m.cachePath != "" {
			// best effort, the TUI works fine without the offline copy
			_ = cache.Save(m.cachePath, m.store.State())
		}
		return fetchDoneMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case fetchDoneMsg:
		m.fetching = false
		if msg.err != nil {
			m.status = "fetch failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.syncFromStore()
		return m, nil

	case serverChangedMsg:
		m.fetching = true
		return m, tea.Batch(m.spin.Tick, m.fetchCmd())

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.fetching = true
			return m, tea.Batch(m.spin.Tick, m.fetchCmd())
		case "d":
			if it, ok := m.list.SelectedItem().(listItem); ok {
				m.store.Dispatch(actions.DeleteItem(it.ID))
				m.syncFromStore()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// syncFromStore rebuilds the visible list from the store's projection.
func (m *Model) syncFromStore() {
	items := m.store.State()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	m.list.SetItems(li)

	dn, pn := stats(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), dn,
		pendingStyle.Render("•"), pn,
		accentStyle.Render("Total"), len(items),
	)
}

func (m Model) View() string {
	listHeight := m.height - 4
	m.list.SetSize(m.width-2, listHeight)

	content := m.list.View()

	var footer string
	switch {
	case m.fetching:
		footer = m.spin.View() + mutedStyle.Render(" fetching…")
	case m.status != "":
		footer = errorStyle.Render(m.status)
	}
	if footer != "" {
		content += "\n" + footer
	}
	return panelStyle.Render(content)
}

// Run starts the program and, best effort, a websocket listener that turns
// server-side mutations into reload messages.
func Run(s *store.Store, c *api.Client, cachePath string) error {
	p := tea.NewProgram(NewModel(s, c, cachePath), tea.WithAltScreen())

	stop := make(chan struct{})
	defer close(stop)
	go listenChanges(c.WebsocketURL(), p, stop)

	_, err := p.Run()
	return err
}

// listenChanges re-dials until stopped and forwards every change event as a
// message. The TUI works without it; this only saves manual reloads.
func listenChanges(url string, p *tea.Program, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		ws, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			select {
			case <-stop:
				return
			case <-time.After(5 * time.Second):
				continue
			}
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				ws.Close()
				break
			}
			p.Send(serverChangedMsg{})
		}
	}
}

// small list stats used for the header
func stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
