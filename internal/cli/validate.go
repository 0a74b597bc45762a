package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fterranova/venture-playbooks/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check an exported assessment for missing sections",
	Long: `Validate an exported assessment document against the expected section
layout. Without an argument the configured export path is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			if Session == nil {
				return fmt.Errorf("session not initialized")
			}
			path = Session.ExportPath()
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading assessment: %w", err)
		}

		missing := report.Validate(string(content))
		if len(missing) == 0 {
			fmt.Printf("%s: all sections present.\n", path)
			return nil
		}

		fmt.Printf("%s is missing %d section(s):\n", path, len(missing))
		for _, header := range missing {
			fmt.Println(errorStyle.Render("  - " + header))
		}
		return fmt.Errorf("validation failed")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
