package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/myrjola/docket/internal/engine"
)

func rollCmd(app *application) *cobra.Command {
	var (
		modifier    int
		description string
	)
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Resolve a d20 roll with a flat modifier",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			roll, err := app.eng.Roll(context.Background(), caseID, modifier, description)
			if err != nil {
				return err
			}
			return app.printJSON(roll)
		},
	}
	cmd.Flags().IntVar(&modifier, "modifier", 0, "Flat modifier added to the natural d20")
	cmd.Flags().StringVar(&description, "description", "", "What the roll decides")
	return cmd
}

func checkCmd(app *application) *cobra.Command {
	var (
		difficulty string
		evidence   int
		trustOf    string
		trust      int
		extra      int
		dc         int
	)
	cmd := &cobra.Command{
		Use:   "check <action>",
		Short: "Resolve a d20 action check from difficulty, evidence, and trust",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			params := engine.CheckParams{
				Action:     args[0],
				Difficulty: difficulty,
				Evidence:   evidence,
				TrustOf:    trustOf,
				Trust:      trust,
				Extra:      extra,
			}
			if cmd.Flags().Changed("dc") {
				params.TargetDC = &dc
			}
			roll, err := app.eng.Check(context.Background(), caseID, params)
			if err != nil {
				return err
			}
			return app.printJSON(roll)
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "trivial, easy, moderate, hard, very_hard, or nearly_impossible")
	cmd.Flags().IntVar(&evidence, "evidence", 0, "Supporting evidence count, capped at three")
	cmd.Flags().StringVar(&trustOf, "trust-of", "", "Character whose ledger trust feeds the check")
	cmd.Flags().IntVar(&trust, "trust", 0, "Direct trust value, ignored when --trust-of is set")
	cmd.Flags().IntVar(&extra, "extra", 0, "Situational modifier")
	cmd.Flags().IntVar(&dc, "dc", 0, "Difficulty class for a pass or fail verdict with margin")
	return cmd
}
