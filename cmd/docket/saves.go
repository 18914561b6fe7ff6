package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/myrjola/docket/internal/models"
)

// saveView lists a save artifact without its full state payload.
type saveView struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Phase      models.Phase `json:"phase"`
	ActiveGate string       `json:"active_gate,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func newSaveView(artifact *models.SaveArtifact) saveView {
	return saveView{
		ID:         artifact.ID,
		Label:      artifact.Label,
		Phase:      artifact.Phase,
		ActiveGate: artifact.ActiveGate,
		CreatedAt:  artifact.CreatedAt,
	}
}

func saveCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "save <label>",
		Short: "Capture the case state in a new labeled save artifact",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			artifact, err := app.eng.Save(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(newSaveView(artifact))
		},
	}
}

func restoreCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <label>",
		Short: "Roll the case back to the most recent save artifact with a label",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			result, err := app.eng.Restore(context.Background(), caseID, args[0])
			if err != nil {
				return err
			}
			return app.printJSON(map[string]saveView{
				"restored": newSaveView(result.Artifact),
				"backup":   newSaveView(result.Backup),
			})
		},
	}
}

func savesCmd(app *application) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List save artifacts, or prune them with --cleanup",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if cmd.Flags().Changed("cleanup") {
				removed, err := app.eng.CleanupSaves(ctx, caseID, keep)
				if err != nil {
					return err
				}
				return app.printJSON(map[string][]string{"removed": removed})
			}

			artifacts, err := app.eng.ListSaves(ctx, caseID)
			if err != nil {
				return err
			}
			views := make([]saveView, 0, len(artifacts))
			for i := range artifacts {
				views = append(views, newSaveView(&artifacts[i]))
			}
			return app.printJSON(views)
		},
	}
	cmd.Flags().IntVar(&keep, "cleanup", 0, "Prune to the newest artifacts; --cleanup=N overrides the DOCKET_SAVE_KEEP default")
	cmd.Flags().Lookup("cleanup").NoOptDefVal = strconv.Itoa(app.cfg.SaveKeep)
	return cmd
}

func snapshotCmd(app *application) *cobra.Command {
	var (
		threads  []string
		strategy string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Emit a narrative snapshot with narrator-supplied threads and strategy",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, err := app.selectedCase()
			if err != nil {
				return err
			}
			snapshot, path, err := app.eng.Snapshot(context.Background(), caseID, threads, strategy)
			if err != nil {
				return err
			}
			return app.printJSON(struct {
				Snapshot models.Snapshot `json:"snapshot"`
				Path     string          `json:"path"`
			}{Snapshot: snapshot, Path: path})
		},
	}
	cmd.Flags().StringSliceVar(&threads, "threads", nil, "Unresolved narrative thread, repeatable; none derives them from case state")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Trial strategy note")
	return cmd
}
