package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/babacardot/suparaise-sub001/internal/application/port/input"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/userinteraction"
)

var (
	runUserID    string
	runStartupID string
	runTargetID  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit one startup to one target",
	Long:  "Loads the startup profile and target from the database, plans the instruction, runs the configured engine and records the submission.",
	RunE:  runSubmission,
}

func init() {
	runCmd.Flags().StringVar(&runUserID, "user-id", "", "Owner user ID (required)")
	runCmd.Flags().StringVar(&runStartupID, "startup-id", "", "Startup ID (required)")
	runCmd.Flags().StringVar(&runTargetID, "target-id", "", "Target ID (required)")

	for _, name := range []string{"user-id", "startup-id", "target-id"} {
		if err := runCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(runCmd)
}

func runSubmission(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container("run")
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.ConnectStorage(ctx); err != nil {
		return err
	}

	sub, err := c.Submissions.Run(ctx, input.RunRequest{
		UserID:    runUserID,
		StartupID: runStartupID,
		TargetID:  runTargetID,
	})
	if sub != nil {
		userinteraction.NewConsole(cmd.OutOrStdout()).ShowSubmission(sub)
	}
	if err != nil {
		return err
	}
	if sub.Status == entity.SubmissionFailed {
		return fmt.Errorf("submission %s failed", sub.ID)
	}
	return nil
}
