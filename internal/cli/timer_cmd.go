package cli

import (
	"fmt"
	"strings"

	"timetracker/internal/tracker"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "start [task...]",
		Short: "Start a timer for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tr := app.newTracker(cmd.OutOrStdout())
			defer tr.Close()
			tr.Activate(ctx)

			if projectFlag != "" {
				id, err := resolveProject(tr.ProjectOptions(), projectFlag)
				if err != nil {
					return err
				}
				tr.SelectProject(id)
			}
			tr.SetTask(strings.Join(args, " "))

			if err := tr.Start(ctx); err != nil {
				return ErrReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project ID or name")
	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tr := app.newTracker(cmd.OutOrStdout())
			defer tr.Close()
			tr.Activate(ctx)

			if err := tr.Stop(ctx); err != nil {
				return ErrReported
			}
			return nil
		},
	}
}

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's time entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			tr := app.newTracker(out)
			defer tr.Close()
			tr.Activate(ctx)

			rows := tr.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No time entries today.")
				return nil
			}

			cols := tr.Columns()
			headers := make([]string, len(cols))
			for i, c := range cols {
				headers[i] = c.Label
			}
			cells := make([][]string, 0, len(rows))
			for _, r := range rows {
				row := make([]string, len(cols))
				for i, c := range cols {
					row[i] = r.Value(c.Field)
				}
				cells = append(cells, row)
			}
			fmt.Fprint(out, renderTable(headers, cells))

			if running := tr.Running(); running != nil {
				started := ""
				if running.Start != nil {
					started = " (started " + humanize.Time(*running.Start) + ")"
				}
				fmt.Fprintf(out, "\nRunning: %s · %s %s%s\n", running.Project.Name, running.Task, tr.Elapsed(), started)
			}
			fmt.Fprintf(out, "\nTotal: %s\n", tr.TotalTime())
			return nil
		},
	}
}

// resolveProject matches a project by exact ID first, then by
// case-insensitive name.
func resolveProject(options []tracker.ProjectOption, ref string) (string, error) {
	for _, o := range options {
		if o.Value == ref {
			return o.Value, nil
		}
	}
	for _, o := range options {
		if strings.EqualFold(o.Label, ref) {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("unknown project %q", ref)
}
