// Package cli implements the vpk command tree: the interactive assessment
// loop, status and dashboard views, playbook execution, and the MCP server
// entry point.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
	rootCmd.Version = version
}

var rootCmd = &cobra.Command{
	Use:   "vpk",
	Short: "Venture Playbook Kit - guided founder assessment console",
	Long: `Venture Playbook Kit (vpk) is an interactive console that guides a
founder through a structured questionnaire and produces a Vision &
Opportunity assessment: vision statement variations, a TAM estimate,
market timing analysis, and exit strategy considerations.

Answers feed a shared knowledge store that unlocks and updates fourteen
further playbooks through a static dependency graph.`,
}

var (
	flagDebug  bool
	flagConfig string
)

// ConfigOverride extracts the --config value from raw command-line
// arguments. The base path must be resolved before cobra parses flags, so
// the startup path scans the arguments itself; cobra re-parses the flag
// later for help output and validation.
func ConfigOverride(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			return ""
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if value, found := strings.CutPrefix(arg, "--config="); found {
			return value
		}
	}
	return ""
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vpk %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a .vpkconfig file or the directory holding it")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flagDebug && Config != nil {
			Config.Debug = true
		}
	}
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if StartupWarning != "" {
		fmt.Printf("warning: %s\n", StartupWarning)
	}
	return rootCmd.Execute()
}
