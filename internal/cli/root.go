package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"timetracker/internal/api"
	"timetracker/internal/config"
	"timetracker/internal/db"
	"timetracker/internal/project"
	"timetracker/internal/tracker"

	"github.com/spf13/cobra"
)

// ErrReported means the failure was already shown to the user as a
// notification.
var ErrReported = errors.New("command failed")

// Backend is what every command needs: the tracker procedures plus project
// management. Both the local repository and the HTTP client satisfy it.
type Backend interface {
	tracker.Backend
	CreateProject(ctx context.Context, name string) (*project.Project, error)
}

// App holds the wiring shared by all commands. Backend and Logger are
// resolved from configuration when left nil.
type App struct {
	Backend       Backend
	Logger        *slog.Logger
	Config        config.Config
	IsInteractive func() bool

	closers []func() error
}

// NewRootCmd creates the top-level "timetracker" command. Without a
// subcommand it opens the interactive tracker.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timetracker",
		Short:         "Track time against projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	root.PersistentFlags().String("db", "", "SQLite database path")
	root.PersistentFlags().String("backend", "", "remote backend URL (overrides --db)")

	root.AddCommand(
		newStartCmd(app),
		newStopCmd(app),
		newTodayCmd(app),
		newProjectsCmd(app),
		newProjectCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.Config = cfg

	if a.Logger == nil {
		// The TUI owns the terminal, so it only logs to a file.
		fallback := cmd.ErrOrStderr()
		if cmd.Parent() == nil {
			fallback = io.Discard
		}
		logger, err := a.newLogger(fallback)
		if err != nil {
			return err
		}
		a.Logger = logger
		slog.SetDefault(logger)
	}

	if a.IsInteractive == nil {
		a.IsInteractive = func() bool { return false }
	}

	if a.Backend == nil {
		if err := a.openBackend(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) newLogger(fallback io.Writer) (*slog.Logger, error) {
	w := fallback
	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, f.Close)
		w = f
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: a.Config.LogLevel})), nil
}

func (a *App) openBackend() error {
	if a.Config.Remote() {
		a.Logger.Debug("using remote backend", "url", a.Config.Backend)
		a.Backend = api.NewClient(a.Config.Backend, nil)
		return nil
	}

	database, err := db.OpenDB(a.Config.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.closers = append(a.closers, database.Close)
	a.Logger.Debug("using local database", "path", a.Config.DBPath)
	a.Backend = project.NewRepository(database)
	return nil
}

// Close releases everything opened during setup.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newTracker wires a tracker that reports notifications to w.
func (a *App) newTracker(w io.Writer) *tracker.Tracker {
	return tracker.New(tracker.Deps{
		Backend:  a.Backend,
		Notifier: tracker.WriterNotifier{W: w},
		Logger:   a.Logger,
	})
}
