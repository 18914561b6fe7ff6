package main

import (
	"context"

	"github.com/spf13/cobra"
)

func gateCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Drive story gate progression",
	}
	cmd.AddCommand(gateStartCmd(app), gateCompleteCmd(app))
	return cmd
}

func gateStartCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "start <gate>",
		Short: "Move a pending gate to in progress",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			gate, err := app.eng.StartGate(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(gate)
		},
	}
}

func gateCompleteCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <gate>",
		Short: "Complete a gate and emit a narrative snapshot",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			result, err := app.eng.CompleteGate(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(result)
		},
	}
}
