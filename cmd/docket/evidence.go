package main

import (
	"context"

	"github.com/spf13/cobra"
)

func evidenceCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Manage the evidence ledger",
	}
	cmd.AddCommand(evidenceAddCmd(app), evidenceListCmd(app))
	return cmd
}

func evidenceAddCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [description]",
		Short: "Record a discovered piece of evidence",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			evidence, err := app.eng.AddEvidence(context.Background(), caseID, args[0], description)
			if err != nil {
				return err
			}
			return app.printJSON(evidence)
		},
	}
}

func evidenceListCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered evidence in discovery order",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			evidence, err := app.eng.Evidence(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(evidence)
		},
	}
}
