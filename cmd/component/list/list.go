package list

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var docStyle = lipgloss.NewStyle().Margin(3, 3)

// Item is one maintenance step in the browser.
type Item struct {
	Name     string
	Detail   string
	Commands []string
}

var _ list.DefaultItem = Item{}

func (i Item) Title() string       { return i.Name }
func (i Item) Description() string { return i.Detail }
func (i Item) FilterValue() string {
	return strings.Join(append([]string{i.Name, i.Detail}, i.Commands...), " ")
}

type Model struct {
	list        list.Model
	copyBinding key.Binding
}

func NewModel(items []Item, title string) Model {
	var listItems []list.Item
	for _, i := range items {
		listItems = append(listItems, i)
	}

	m := Model{
		list: list.New(listItems, list.NewDefaultDelegate(), 0, 0),
	}
	m.list.Title = title

	m.copyBinding = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy commands"))
	m.list.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{m.copyBinding}
	}

	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.copyBinding}
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.list.FilterState() == list.Unfiltered {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "c":
				if item, ok := m.list.SelectedItem().(Item); ok {
					_ = clipboard.WriteAll(strings.Join(item.Commands, "\n"))
					return m, m.list.NewStatusMessage("Copied commands for " + item.Name)
				}
			}
		}

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return docStyle.Render(m.list.View())
}
