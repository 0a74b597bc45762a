package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fterranova/venture-playbooks/internal/core"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

var (
	statusComplete   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusSufficient = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusBlockedSt  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusIdle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session progress across categories and playbooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Session == nil {
			return fmt.Errorf("session not initialized")
		}

		state := Session.State()
		fmt.Printf("Session %s (%s)\n\n", state.SessionID, state.Phase)

		fmt.Println("Question categories:")
		for _, cat := range models.AllCategories {
			progress := state.Categories[cat]
			fmt.Printf("  %-22s %s %3.0f%%  %s\n",
				cat, progressBar(progress.Progress), progress.Progress*100, progress.Status)
		}
		fmt.Printf("  overall: %.0f%% (%d questions asked)\n\n",
			Session.Monitor().Overall()*100, state.QuestionsAsked)

		summary := Session.Coordinator().Summary()
		fmt.Println("Playbooks:")
		for _, row := range summary.Playbooks {
			line := fmt.Sprintf("  %-24s %-12s %3.0f%%", row.Playbook, row.Status, row.Progress*100)
			if !row.DependenciesMet {
				blocked := make([]string, len(row.BlockedBy))
				for i, pb := range row.BlockedBy {
					blocked[i] = string(pb)
				}
				line += "  blocked by " + strings.Join(blocked, ", ")
			}
			fmt.Println(styleForPlaybook(row).Render(line))
		}
		fmt.Printf("\nOverall playbook progress: %.0f%%\n", summary.OverallProgress*100)
		fmt.Printf("Knowledge items: %d, pending updates: %d\n",
			summary.KnowledgeItems, summary.PendingUpdates)

		used := Session.Budget().Used()
		fmt.Printf("Cost: %d tokens, %d calls, %.1fs\n", used.TokensUsed, used.APICalls, used.ComputationTime)
		if warning, ok := Session.Budget().Warning(); ok {
			fmt.Println(errorStyle.Render("warning: " + warning))
		}
		return nil
	},
}

func styleForPlaybook(row core.PlaybookSummary) lipgloss.Style {
	if !row.DependenciesMet {
		return statusBlockedSt
	}
	switch row.Status {
	case models.PlaybookComplete:
		return statusComplete
	case models.PlaybookSufficient:
		return statusSufficient
	case models.PlaybookInProgress, models.PlaybookNeedsUpdate:
		return statusInProgress
	default:
		return statusIdle
	}
}

// progressBar renders a ten-segment bar for a [0,1] value.
func progressBar(v float64) string {
	filled := int(v * 10)
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
