package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// MenuItem is a selectable course in the menu.
type MenuItem struct {
	GameID    string
	Title     string
	Cleared   bool
	BestScore int
}

// MenuModel is the Bubble Tea model for the course picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	player         string
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	styles         menuStyles
	quitting       bool
	selected       *MenuItem // Set when user selects a course
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

type menuStyles struct {
	title   lipgloss.Style
	cursor  lipgloss.Style
	cleared lipgloss.Style
	dim     lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return menuStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		cursor:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		cleared: r.NewStyle().Foreground(lipgloss.Color("11")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NewMenuModel lists every registered course along with the player's best
// result on it. The store may be nil.
func NewMenuModel(store *storage.Store, player string, cfg core.RuntimeConfig, r *lipgloss.Renderer) MenuModel {
	if player == "" {
		player = storage.LocalPlayer
	}

	best := make(map[string]storage.CourseProgress)
	if store != nil {
		if progress, err := store.AllProgress(player); err == nil {
			for _, p := range progress {
				best[p.CourseID] = p
			}
		}
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		p, ok := best[g.ID]
		items = append(items, MenuItem{
			GameID:    g.ID,
			Title:     g.Title,
			Cleared:   ok && p.Clears > 0,
			BestScore: p.BestScore,
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		styles:    newMenuStyles(r),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.styles.title.Render(centerText("S U P E R   T E R M I N A L   B R O S .", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Player: %s", m.player), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(m.styles.dim.Render(centerText("No courses found", m.width)))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		mark := " "
		if item.Cleared {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s %-16s", cursor, mark, item.Title)
		if item.BestScore > 0 {
			line += fmt.Sprintf(" best %06d", item.BestScore)
		} else {
			line += strings.Repeat(" ", 12)
		}

		line = centerText(line, m.width)
		switch {
		case i == m.cursor:
			line = m.styles.cursor.Render(line)
		case item.Cleared:
			line = m.styles.cleared.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(m.styles.dim.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu in the local terminal and returns the selection.
func RunMenu(store *storage.Store, player string, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, player, cfg, nil)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}

	return result, nil
}
