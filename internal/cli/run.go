package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))
)

// runModel drives the interactive questionnaire: one question at a time,
// the answer recorded on enter, until the session reaches sufficiency.
type runModel struct {
	input    textinput.Model
	question models.Question
	active   bool
	message  string
	err      error
}

func newRunModel() runModel {
	ti := textinput.New()
	ti.Placeholder = "Your answer..."
	ti.CharLimit = 2000
	ti.Width = 70
	ti.Focus()

	m := runModel{input: ti}
	m.advance()
	return m
}

// advance pulls the next question; a false result ends the loop.
func (m *runModel) advance() {
	q, ok := Session.NextQuestion()
	if !ok {
		m.active = false
		return
	}
	m.question = q
	m.active = true
}

func (m runModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			answer := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			m.message = ""

			if answer == "" {
				m.message = "Please enter an answer (or ctrl+c to stop)."
				return m, nil
			}
			if strings.EqualFold(answer, "skip") && Session.SkipAvailable() {
				if err := Session.AcceptSkip(); err != nil {
					m.err = err
					return m, tea.Quit
				}
				return m, tea.Quit
			}

			if err := Session.RecordResponse(m.question, answer); err != nil {
				m.err = err
				return m, tea.Quit
			}
			if warning, ok := Session.Budget().Warning(); ok {
				m.message = skipStyle.Render(warning)
			}

			if Session.Monitor().Phase() != models.PhaseGathering {
				return m, tea.Quit
			}
			m.advance()
			if !m.active {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m runModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder
	overall := Session.Monitor().Overall()
	b.WriteString(progressStyle.Render(fmt.Sprintf("Completion: %.0f%%", overall*100)))
	b.WriteString("  ")
	b.WriteString(categoryStyle.Render(fmt.Sprintf("[%s]", m.question.Category)))
	b.WriteString("\n\n")

	b.WriteString(questionStyle.Render(m.question.Text))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.question.Rationale))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.question.SkipOption {
		b.WriteString(skipStyle.Render("Type 'skip' to finish early with the answers so far."))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter: submit | ctrl+c: save and quit"))
	return b.String()
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive founder questionnaire",
	Long: `Run the guided questionnaire. Questions target the least-covered
category first; the loop ends once enough information has been gathered
(or when skipping becomes available and is accepted). The session is
saved on exit and the assessment is generated once sufficient.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Session == nil {
			return fmt.Errorf("session not initialized")
		}

		if Session.Monitor().Phase() == models.PhaseGathering {
			p := tea.NewProgram(newRunModel())
			finalModel, err := p.Run()
			if err != nil {
				return fmt.Errorf("running questionnaire: %w", err)
			}
			if m, ok := finalModel.(runModel); ok && m.err != nil {
				return m.err
			}
		}

		if err := Session.Save(); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		fmt.Printf("Session saved (%d questions answered, %.0f%% complete).\n",
			Session.State().QuestionsAsked, Session.Monitor().Overall()*100)

		if Session.Monitor().Phase() == models.PhaseGathering {
			for _, hint := range Session.Monitor().MissingCriticalInfo() {
				fmt.Println(errorStyle.Render("- " + hint))
			}
			fmt.Println("Run 'vpk run' again to continue the questionnaire.")
			return nil
		}

		return generateAndExport()
	},
}

// generateAndExport renders the assessment, exports it when configured, and
// persists the final session state.
func generateAndExport() error {
	content, err := Session.GenerateAssessment()
	if err != nil && content == "" {
		return fmt.Errorf("generating assessment: %w", err)
	}
	if err != nil {
		// Budget breaches still produce a document; surface the warning.
		fmt.Println(errorStyle.Render("warning: " + err.Error()))
	}

	if Config != nil && Config.AutoExport {
		path, exportErr := Session.Export(content)
		if exportErr != nil {
			return exportErr
		}
		fmt.Printf("Assessment exported to %s\n", path)
	} else {
		fmt.Println(content)
	}

	return Session.Save()
}

func init() {
	rootCmd.AddCommand(runCmd)
}
