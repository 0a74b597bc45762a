package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

var playbookCmd = &cobra.Command{
	Use:   "playbook",
	Short: "Inspect and run the startup playbooks",
}

var playbookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playbooks with their unlock state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Session == nil {
			return fmt.Errorf("session not initialized")
		}

		state := Session.State()
		for _, pb := range models.AllPlaybooks {
			ps := state.Playbooks[pb]
			marker := " "
			if !ps.DependenciesMet {
				marker = "x"
			}
			fmt.Printf("[%s] %-24s %-12s priority=%s\n", marker, pb, ps.Status, ps.Priority)
		}

		if next, ok := Session.Coordinator().NextRecommended(); ok {
			fmt.Printf("\nRecommended next: %s\n", next)
		}
		return nil
	},
}

var playbookRunCmd = &cobra.Command{
	Use:   "run <playbook>",
	Short: "Run one playbook's agent over the gathered knowledge",
	Long: `Run a playbook's agent. The agent reads the shared knowledge store,
renders its artifacts, and publishes key outputs back into the store,
which may unlock further playbooks. A playbook whose requirements are
not yet met is rejected with the blocking playbooks named.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Session == nil {
			return fmt.Errorf("session not initialized")
		}

		pb := models.PlaybookType(args[0])
		produced, err := Session.RunPlaybook(pb)
		if err != nil && len(produced) == 0 {
			return err
		}
		if err != nil {
			fmt.Println(errorStyle.Render("warning: " + err.Error()))
		}

		for _, artifact := range produced {
			fmt.Printf("== %s ==\n%s\n", artifact.Name, artifact.Markdown)
		}
		fmt.Printf("%s complete: %d artifacts produced.\n", pb, len(produced))
		return Session.Save()
	},
}

func init() {
	playbookCmd.AddCommand(playbookListCmd)
	playbookCmd.AddCommand(playbookRunCmd)
	rootCmd.AddCommand(playbookCmd)
}
