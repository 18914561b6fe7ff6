package main

import (
	"context"

	"github.com/spf13/cobra"
)

func statusCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report phase, gates, and counters",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			status, err := app.eng.Status(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(status)
		},
	}
}

func summaryCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Full case digest: status plus evidence, characters, and notes",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			summary, err := app.eng.Summary(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(summary)
		},
	}
}

func resumeCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Rebuild narrator context after a conversation reset",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			resume, err := app.eng.Resume(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(resume)
		},
	}
}

func resolveCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Close a case whose trial has concluded",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			c, err := app.eng.Resolve(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(newCaseView(c))
		},
	}
}
