package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/myrjola/docket/internal/models"
)

func newCmd(app *application) *cobra.Command {
	var (
		tier      int
		title     string
		locations []string
	)
	cmd := &cobra.Command{
		Use:   "new <case-id>",
		Short: "Scaffold a case with its tier's gate structure",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.eng.NewCase(context.Background(), args[0], models.Backbone{
				Title:     title,
				Tier:      tier,
				Locations: locations,
			})
			if err != nil {
				return err
			}
			return app.printJSON(newCaseView(c))
		},
	}
	cmd.Flags().IntVar(&tier, "tier", 2, "Case length: 1 single trial, 2 one investigation day, 3 full arc")
	cmd.Flags().StringVar(&title, "title", "", "Case title, defaults to the case id")
	cmd.Flags().StringSliceVar(&locations, "location", nil, "Allowed location, repeatable; none permits movement anywhere")
	return cmd
}
