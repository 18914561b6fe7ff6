package main

import (
	"context"

	"github.com/spf13/cobra"
)

func nameCmd(app *application) *cobra.Command {
	var (
		role     string
		relative string
	)
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Create a fully profiled character without disclosing their hidden role",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			character, err := app.eng.GenerateCharacter(context.Background(), caseID, role, relative)
			if err != nil {
				return err
			}
			return app.printJSON(character)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Narrative role hint, e.g. witness or prosecutor; fixed at creation")
	cmd.Flags().StringVar(&relative, "relative", "", "Existing character the new one is related to; they share a surname")
	return cmd
}

func revealCmd(app *application) *cobra.Command {
	var ack bool
	cmd := &cobra.Command{
		Use:   "reveal <character>",
		Short: "Disclose a character's hidden role; audited",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			outcome, err := app.eng.Reveal(context.Background(), caseID, args[0], ack)
			if err != nil {
				return err
			}
			return app.printJSON(outcome)
		},
	}
	cmd.Flags().BoolVar(&ack, "i-want-spoilers", false, "Acknowledge that this spoils the mystery")
	return cmd
}

func statsCmd(app *application) *cobra.Command {
	var ack bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Hidden-role distribution of the cast",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			stats, err := app.eng.Stats(context.Background(), caseID, ack)
			if err != nil {
				return err
			}
			return app.printJSON(stats)
		},
	}
	cmd.Flags().BoolVar(&ack, "i-want-spoilers", false, "Disclose identities; every disclosure is audited")
	return cmd
}
