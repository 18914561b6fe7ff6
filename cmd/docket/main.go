package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/myrjola/docket/internal/casefile"
	"github.com/myrjola/docket/internal/config"
	"github.com/myrjola/docket/internal/dice"
	"github.com/myrjola/docket/internal/engine"
	"github.com/myrjola/docket/internal/errors"
	"github.com/myrjola/docket/internal/exitcode"
	"github.com/myrjola/docket/internal/logging"
	"github.com/myrjola/docket/internal/models"
	"github.com/myrjola/docket/internal/namegen"
)

// errUsage marks command-line parse failures so they exit with the
// conventional usage code instead of a domain code.
var errUsage = errors.NewSentinel("invalid command line")

type application struct {
	eng      *engine.Engine
	cfg      config.Config
	logger   *slog.Logger
	stdout   io.Writer
	caseFlag string
}

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:], os.LookupEnv))
}

func run(stdout, stderr io.Writer, args []string, lookupEnv func(string) (string, bool)) int {
	// A .env file is a development convenience, not a requirement.
	_ = godotenv.Load()

	cfg, err := config.Load(lookupEnv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitcode.From(err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitcode.From(err)
	}

	// Logs go to stderr: stdout carries command output and, under serve,
	// the MCP stdio transport.
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	})))

	app := &application{
		eng:    engine.New(casefile.NewStore(cfg.CasesDir, logger), dice.NewRoller(nil), namegen.New(0), logger),
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
	}

	root := &cobra.Command{
		Use:           "docket",
		Short:         "Case state orchestration for narrated investigations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, flagErr error) error {
		return errors.Join(errUsage, flagErr)
	})
	root.PersistentFlags().StringVar(&app.caseFlag, "case", "", "Case to operate on (env DOCKET_CASE)")

	root.AddCommand(
		newCmd(app),
		statusCmd(app),
		summaryCmd(app),
		resumeCmd(app),
		resolveCmd(app),
		gateCmd(app),
		evidenceCmd(app),
		interviewCmd(app),
		trustCmd(app),
		noteCmd(app),
		moveCmd(app),
		rollCmd(app),
		checkCmd(app),
		nameCmd(app),
		revealCmd(app),
		statsCmd(app),
		examCmd(app),
		saveCmd(app),
		restoreCmd(app),
		savesCmd(app),
		snapshotCmd(app),
		serveCmd(app),
		versionCmd(),
	)

	if err = root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, errUsage) {
			return exitcode.Usage
		}
		return exitcode.From(err)
	}
	return exitcode.OK
}

// Argument validators that fail with the usage exit code instead of a
// domain code.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return errors.Join(errUsage, err)
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return errors.Join(errUsage, err)
		}
		return nil
	}
}

func rangeArgs(minimum, maximum int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(minimum, maximum)(cmd, args); err != nil {
			return errors.Join(errUsage, err)
		}
		return nil
	}
}

// selectedCase resolves the case every non-scaffolding command operates on:
// the --case flag when given, otherwise DOCKET_CASE.
func (app *application) selectedCase() (string, error) {
	if app.caseFlag != "" {
		return app.caseFlag, nil
	}
	if app.cfg.CaseID != "" {
		return app.cfg.CaseID, nil
	}
	return "", errors.Wrap(casefile.ErrInvalidName, "select case: pass --case or set DOCKET_CASE")
}

func (app *application) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	if _, err = fmt.Fprintln(app.stdout, string(data)); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

// caseView is the compact scaffolding/resolution report; day-to-day state
// reading goes through status and summary.
type caseView struct {
	CaseID   string        `json:"case_id"`
	Title    string        `json:"title"`
	Tier     int           `json:"tier"`
	Phase    models.Phase  `json:"phase"`
	Location string        `json:"location,omitempty"`
	Gates    []models.Gate `json:"gates"`
}

func newCaseView(c *models.Case) caseView {
	return caseView{
		CaseID:   c.ID,
		Title:    c.Backbone.Title,
		Tier:     c.Backbone.Tier,
		Phase:    c.Investigation.Phase,
		Location: c.Investigation.Location,
		Gates:    c.Investigation.Gates,
	}
}
