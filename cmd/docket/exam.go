package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/trial"
)

func examCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Run a cross-examination",
	}
	cmd.AddCommand(
		examBeginCmd(app),
		examPressCmd(app),
		examPresentCmd(app),
		examStatusCmd(app),
		examEndCmd(app),
	)
	return cmd
}

func examBeginCmd(app *application) *cobra.Command {
	var statementsFile string
	cmd := &cobra.Command{
		Use:   "begin <witness>",
		Short: "Open a cross-examination of a witness",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			statements, err := loadStatements(statementsFile)
			if err != nil {
				return err
			}
			exam, err := app.eng.ExamBegin(context.Background(), caseID, args[0], statements)
			if err != nil {
				return err
			}
			return app.printJSON(exam)
		},
	}
	cmd.Flags().StringVar(&statementsFile, "statements-file", "",
		"YAML file of testimony statements; omit to load the witness's authored statements")
	return cmd
}

// loadStatements reads narrator-authored testimony from a YAML file: a list
// of {text, contradiction} entries.
func loadStatements(path string) ([]models.BackboneStatement, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read statements file", slog.String("path", path))
	}
	var statements []models.BackboneStatement
	if err = yaml.Unmarshal(data, &statements); err != nil {
		return nil, errors.Wrap(err, "parse statements file", slog.String("path", path))
	}
	return statements, nil
}

func examPressCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "press <statement>",
		Short: "Press a testimony statement for elaboration, at no risk",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			statement, err := app.eng.ExamPress(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(statement)
		},
	}
}

func examPresentCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "present <statement> <evidence>",
		Short: "Confront a testimony statement with evidence; wrong evidence costs a penalty",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			result, err := app.eng.ExamPresent(context.Background(), caseID, args[0], args[1])
			if err != nil {
				return err
			}
			if err = app.printJSON(result); err != nil {
				return err
			}
			// The exhausted state is persisted before the process reports
			// it, so a restore can pick up from the failed attempt.
			if result.Exhausted {
				return errors.Wrap(trial.ErrExhausted, "cross-examination lost",
					slog.Int("penalties", result.Penalties))
			}
			return nil
		},
	}
}

func examStatusCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report cross-examination progress and terminal state",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			report, err := app.eng.ExamStatus(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(report)
		},
	}
}

func examEndCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Abandon the active cross-examination without a verdict",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			exam, err := app.eng.ExamEnd(context.Background(), caseID)
			if err != nil {
				return err
			}
			return app.printJSON(exam)
		},
	}
}
