// Package replay renders a stored simulation as a stepped courtroom
// session in the terminal. Turns are revealed one at a time with their
// synthetic timestamps; the thinking log of the speaking role can be
// toggled alongside.
package replay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"jurix/internal/types"
)

const (
	minWidth          = 40
	horizontalPadding = 4
)

// Model is the bubbletea model for one stored simulation.
type Model struct {
	result *types.SimulationResult

	viewport viewport.Model
	revealed int // number of turns currently shown
	thinking bool
	dirty    bool
	help     bool
}

// New returns a model positioned before the first turn.
func New(result *types.SimulationResult) *Model {
	vp := viewport.New(80, 20)
	return &Model{
		result:   result,
		viewport: vp,
		revealed: 1,
		dirty:    true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "j", "down", " ", "right", "enter":
			m.reveal(1)
		case "k", "up", "left":
			m.reveal(-1)
		case "g":
			m.revealed = min(1, len(m.result.Turns))
			m.dirty = true
		case "G":
			m.revealed = len(m.result.Turns)
			m.dirty = true
		case "t":
			m.thinking = !m.thinking
			m.dirty = true
		case "?":
			m.help = !m.help
			m.dirty = true
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		width := msg.Width - horizontalPadding
		if width < minWidth {
			width = minWidth
		}
		m.viewport.Width = width
		height := msg.Height - 7
		if height < 5 {
			height = 5
		}
		m.viewport.Height = height
		m.dirty = true
		return m, nil
	}
	return m, nil
}

// reveal moves the reveal cursor, clamped to [1, len(turns)]. Simulations
// with no turns stay pinned at zero.
func (m *Model) reveal(delta int) {
	total := len(m.result.Turns)
	if total == 0 {
		return
	}
	target := m.revealed + delta
	if target < 1 {
		target = 1
	}
	if target > total {
		target = total
	}
	if target != m.revealed {
		m.revealed = target
		m.dirty = true
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	m.refreshIfDirty()

	parts := []string{
		headerStyle.Render(fmt.Sprintf("Simulation %s", m.result.SimulationID)),
		m.statusLine(),
		m.viewport.View(),
		helperStyle.Render("j/space next · k prev · g/G first/last · t thinking · ? help · q quit"),
	}
	if m.help {
		parts = append(parts, m.helpView())
	}
	return strings.Join(parts, "\n")
}

func (m *Model) statusLine() string {
	total := len(m.result.Turns)
	shown := m.revealed
	if total == 0 {
		shown = 0
	}
	stats := []string{
		fmt.Sprintf("Turn %d/%d", shown, total),
		fmt.Sprintf("Path %s", m.result.Tier),
		fmt.Sprintf("Evidence %d", m.result.EvidenceAnalyzed),
	}
	if m.thinking {
		stats = append(stats, "Thinking on")
	}
	return statusStyle.Render(strings.Join(stats, "  |  "))
}

func (m *Model) helpView() string {
	lines := []string{
		"space/j reveal the next turn, k steps back one turn",
		"t shows the speaking role's thinking log under each turn",
		"g and G jump to the first and last turn",
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) refreshIfDirty() {
	if !m.dirty {
		return
	}
	m.dirty = false
	content := m.renderTurns()
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// renderTurns renders every revealed turn with its role badge, synthetic
// timestamp, and wrapped message.
func (m *Model) renderTurns() string {
	if len(m.result.Turns) == 0 {
		return helperStyle.Render("No structured turns were extracted from this transcript.")
	}

	wrap := m.viewport.Width - 2
	if wrap < 20 {
		wrap = 20
	}

	var b strings.Builder
	for i := 0; i < m.revealed && i < len(m.result.Turns); i++ {
		turn := m.result.Turns[i]
		badge := roleStyle(turn.Role).Render(" " + strings.ToUpper(turn.Role) + " ")
		meta := helperStyle.Render(fmt.Sprintf("%s · %ds", turn.Timestamp, turn.Duration))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", meta))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(turn.Message, wrap))
		b.WriteString("\n")

		if m.thinking {
			if thoughts := m.thoughtsFor(turn.Role); len(thoughts) > 0 {
				b.WriteString(thinkingStyle.Render(formatThoughts(thoughts, wrap)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// thoughtsFor maps a turn role to its thinking log.
func (m *Model) thoughtsFor(role string) []types.ThoughtEntry {
	key := strings.ToLower(role) + "_thoughts"
	return m.result.Thinking[key]
}

// formatThoughts keeps the trace short: category-tagged one-liners.
func formatThoughts(thoughts []types.ThoughtEntry, wrap int) string {
	const maxShown = 6
	start := 0
	if len(thoughts) > maxShown {
		start = len(thoughts) - maxShown
	}
	var lines []string
	for _, t := range thoughts[start:] {
		lines = append(lines, wordwrap.String(fmt.Sprintf("  [%s] %s", t.Category, t.Note), wrap))
	}
	return strings.Join(lines, "\n")
}

func roleStyle(role string) lipgloss.Style {
	switch strings.ToLower(role) {
	case "judge":
		return judgeBadgeStyle
	case "prosecutor":
		return prosecutorBadgeStyle
	case "defense":
		return defenseBadgeStyle
	case "witness":
		return witnessBadgeStyle
	default:
		return courtBadgeStyle
	}
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	helperStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	thinkingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("140")).Italic(true)
	helpBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	badgeBaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f"))

	judgeBadgeStyle      = badgeBaseStyle.Background(lipgloss.Color("#c77dff"))
	prosecutorBadgeStyle = badgeBaseStyle.Background(lipgloss.Color("#ef476f"))
	defenseBadgeStyle    = badgeBaseStyle.Background(lipgloss.Color("#118ab2"))
	witnessBadgeStyle    = badgeBaseStyle.Background(lipgloss.Color("#06d6a0"))
	courtBadgeStyle      = badgeBaseStyle.Background(lipgloss.Color("#ffd166"))
)
