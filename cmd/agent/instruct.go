package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/babacardot/suparaise-sub001/internal/application/port/input"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/schema"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/userinteraction"
)

var (
	instructURL      string
	instructName     string
	instructFormType string
	instructData     string
	instructJSON     bool
)

var instructCmd = &cobra.Command{
	Use:   "instruct",
	Short: "Build the instruction for one target without running it",
	Long:  "Loads a smart data JSON document, dispatches the target to its form specialist and prints the plan identifier, specialist, validation, engine config and instruction.",
	RunE:  runInstruct,
}

func init() {
	instructCmd.Flags().StringVar(&instructURL, "url", "", "Target application URL (required)")
	instructCmd.Flags().StringVar(&instructName, "name", "", "Target name (required)")
	instructCmd.Flags().StringVar(&instructFormType, "form-type", "", "Stored form type: typeform, google, airtable, contact or generic")
	instructCmd.Flags().StringVar(&instructData, "data", "", "Path to the smart data JSON document (required)")
	instructCmd.Flags().BoolVar(&instructJSON, "json", false, "Print the plan as JSON")

	for _, name := range []string{"url", "name", "data"} {
		if err := instructCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(instructCmd)
}

func runInstruct(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(instructData)
	if err != nil {
		return fmt.Errorf("read smart data: %w", err)
	}
	data, err := schema.DecodeSmartData(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", instructData, err)
	}

	c, err := container("instruct")
	if err != nil {
		return err
	}
	defer c.Close()

	plan, err := c.Planner.Plan(cmd.Context(), input.PlanRequest{
		TargetURL:  instructURL,
		TargetName: instructName,
		FormType:   instructFormType,
		Data:       data,
	})
	if err != nil {
		return err
	}

	if instructJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	return userinteraction.NewConsole(cmd.OutOrStdout()).ShowPlan(plan)
}
