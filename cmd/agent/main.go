// Command agent plans and runs startup fundraising form submissions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/babacardot/suparaise-sub001/internal/di"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/env"
)

var envDir string

var rootCmd = &cobra.Command{
	Use:           "agent",
	Short:         "Form-filling agent for startup applications",
	Long:          "Picks the right form specialist for a target, builds the engine instruction and drives Browser Use or a local browser to submit it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", "", "Directory holding .env files (default: working directory)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// container loads configuration and builds the offline part of the app.
func container(name string) (*di.Container, error) {
	cfg, err := env.LoadConfig(envDir)
	if err != nil {
		return nil, err
	}
	return di.New(cfg, name)
}
