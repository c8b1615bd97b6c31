package cli

import (
	"time"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the use cases CLI commands drive.
type App struct {
	Build        app.BuildUseCase
	Compare      app.CompareUseCase
	ValidateTree app.ValidateTreeUseCase
	Prereqs      app.ScorePrereqsUseCase
	// History is nil when run history is disabled.
	History app.HistoryUseCase

	Logger *zap.Logger
	// SetVerbose switches debug logging on once flags are parsed.
	SetVerbose func(bool)
	// IsInteractive reports whether stdout is a terminal. Pagers, forms
	// and spinners only run when it returns true.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// NewRootCmd creates the top-level "spelltree" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "spelltree",
		Short:         "Build, validate and inspect spell progression trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.SetVerbose != nil {
				a.SetVerbose(verbose)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newBuildCmd(a),
		newValidateCmd(a),
		newCompareCmd(a),
		newHistoryCmd(a),
		newViewCmd(a),
		newConfigCmd(a),
		newPrereqsCmd(a),
	)

	return root
}
