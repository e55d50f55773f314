package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/babacardot/suparaise-sub001/internal/infrastructure/userinteraction"
)

var specialistsCmd = &cobra.Command{
	Use:   "specialists",
	Short: "List registered form specialists and check the registry",
	RunE:  runSpecialists,
}

func init() {
	rootCmd.AddCommand(specialistsCmd)
}

func runSpecialists(cmd *cobra.Command, _ []string) error {
	c, err := container("specialists")
	if err != nil {
		return err
	}
	defer c.Close()

	all := c.Registry.All()
	lines := make([]userinteraction.SpecialistLine, 0, len(all))
	for _, s := range all {
		lines = append(lines, userinteraction.SpecialistLine{Type: s.Type(), Name: s.Name()})
	}

	validation := c.Registry.Validate()
	userinteraction.NewConsole(cmd.OutOrStdout()).ShowSpecialists(lines, validation)
	if !validation.IsValid {
		return fmt.Errorf("specialist registry has %d issue(s)", len(validation.Issues))
	}
	return nil
}
