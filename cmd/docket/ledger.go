package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myrjola/docket/internal/errors"
)

func interviewCmd(app *application) *cobra.Command {
	var topic string
	cmd := &cobra.Command{
		Use:   "interview <character>",
		Short: "Append to a character's interview history",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			character, err := app.eng.Interview(context.Background(), caseID, args[0], topic)
			if err != nil {
				return err
			}
			return app.printJSON(character)
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "What the interview covered")
	return cmd
}

func trustCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "trust <character> <delta>",
		Short: "Shift a character's trust by a signed delta",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Join(errUsage, errors.Wrap(err, "parse trust delta"))
			}
			character, err := app.eng.AdjustTrust(context.Background(), caseID, args[0], delta)
			if err != nil {
				return err
			}
			return app.printJSON(character)
		},
	}
}

func noteCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "note <text>",
		Short: "Record a free-text investigation note",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			note, err := app.eng.AddNote(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(note)
		},
	}
}

func moveCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "move <location>",
		Short: "Change the investigation's current location",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			location, err := app.eng.Move(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(map[string]string{"location": location})
		},
	}
}
