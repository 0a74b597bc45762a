package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fterranova/venture-playbooks/internal/core"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Dashboard panel indices.
const (
	panelCategories = iota
	panelPlaybooks
	panelBudget
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	categories []categorySnapshot
	playbooks  []core.PlaybookSummary
	budget     *budgetSnapshot
	phase      models.SessionPhase
	overall    float64

	// State.
	loading bool
	err     error
}

type categorySnapshot struct {
	category models.QuestionCategory
	progress float64
	status   models.CompletionStatus
}

type budgetSnapshot struct {
	used    models.CostMetrics
	limits  models.GlobalConfig
	warning string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	categories []categorySnapshot
	playbooks  []core.PlaybookSummary
	budget     *budgetSnapshot
	phase      models.SessionPhase
	overall    float64
	err        error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelCategories,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.categories = msg.categories
		m.playbooks = msg.playbooks
		m.budget = msg.budget
		m.phase = msg.phase
		m.overall = msg.overall
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(fmt.Sprintf(" VPK Dashboard - %s ", m.phase))
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	categoriesPanel := m.renderCategoriesPanel()
	playbooksPanel := m.renderPlaybooksPanel()
	budgetPanel := m.renderBudgetPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		categoriesPanel = m.applyPanelStyle(panelCategories, categoriesPanel, colWidth-4)
		playbooksPanel = m.applyPanelStyle(panelPlaybooks, playbooksPanel, colWidth-4)
		budgetPanel = m.applyPanelStyle(panelBudget, budgetPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, categoriesPanel, playbooksPanel, budgetPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		categoriesPanel = m.applyPanelStyle(panelCategories, categoriesPanel, panelWidth)
		playbooksPanel = m.applyPanelStyle(panelPlaybooks, playbooksPanel, panelWidth)
		budgetPanel = m.applyPanelStyle(panelBudget, budgetPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, categoriesPanel, playbooksPanel, budgetPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderCategoriesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Question Categories"))
	b.WriteString("\n")

	if len(m.categories) == 0 {
		b.WriteString("  No responses yet.")
		return b.String()
	}

	for _, c := range m.categories {
		label := fmt.Sprintf("  %-22s %s %3.0f%%", c.category, progressBar(c.progress), c.progress*100)
		b.WriteString(styleForCompletion(c.status).Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Overall: %.0f%%", m.overall*100))

	return b.String()
}

func (m dashboardModel) renderPlaybooksPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Playbooks"))
	b.WriteString("\n")

	if len(m.playbooks) == 0 {
		b.WriteString("  No playbooks registered.")
		return b.String()
	}

	unlocked := 0
	for _, row := range m.playbooks {
		marker := " "
		if !row.DependenciesMet {
			marker = "x"
		} else {
			unlocked++
		}
		label := fmt.Sprintf("  [%s] %-24s %3.0f%%", marker, row.Playbook, row.Progress*100)
		b.WriteString(styleForPlaybook(row).Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Unlocked: %d/%d", unlocked, len(m.playbooks)))

	return b.String()
}

func (m dashboardModel) renderBudgetPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Budget"))
	b.WriteString("\n")

	if m.budget == nil {
		b.WriteString("  No budget data.")
		return b.String()
	}

	bd := m.budget
	lines := []struct {
		label string
		value string
	}{
		{"Tokens", fmt.Sprintf("%d / %d", bd.used.TokensUsed, bd.limits.MaxTokens)},
		{"API calls", fmt.Sprintf("%d / %d", bd.used.APICalls, bd.limits.MaxAPICalls)},
		{"Compute", fmt.Sprintf("%.1fs / %ds", bd.used.ComputationTime, bd.limits.MaxComputationTime)},
	}
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", l.label, l.value))
	}

	if bd.warning != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + bd.warning))
	}

	return b.String()
}

func styleForCompletion(status models.CompletionStatus) lipgloss.Style {
	switch status {
	case models.StatusComplete:
		return statusComplete
	case models.StatusSufficient:
		return statusSufficient
	case models.StatusInProgress:
		return statusInProgress
	default:
		return statusIdle
	}
}

func loadData() tea.Msg {
	if Session == nil {
		return dataLoadedMsg{err: fmt.Errorf("session not initialized")}
	}

	state := Session.State()
	result := dataLoadedMsg{
		phase:   state.Phase,
		overall: Session.Monitor().Overall(),
	}

	for _, cat := range models.AllCategories {
		progress := state.Categories[cat]
		result.categories = append(result.categories, categorySnapshot{
			category: cat,
			progress: progress.Progress,
			status:   progress.Status,
		})
	}

	summary := Session.Coordinator().Summary()
	result.playbooks = summary.Playbooks

	snapshot := &budgetSnapshot{used: Session.Budget().Used()}
	if Config != nil {
		snapshot.limits = *Config
	}
	if warning, ok := Session.Budget().Warning(); ok {
		snapshot.warning = warning
	}
	result.budget = snapshot

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for session progress and budget",
	Long: `Launch an interactive terminal dashboard showing question category
progress, playbook unlock state, and cost budget consumption.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Session == nil {
			return fmt.Errorf("session not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
