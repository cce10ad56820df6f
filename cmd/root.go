// Package cmd defines and implements the CLI commands for the linkforge
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linkforge/linkforge/internal/app"
	"github.com/linkforge/linkforge/internal/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the command context.
type appKeyType string

const appKey appKeyType = "app"

// App is the slice of the application container that commands rely on.
// It is an interface so tests can inject a fake.
type App interface {
	Close()
	Logger() *zap.Logger
	Config() config.Config
}

// newApp is the application factory. It's a variable so tests can replace
// it with a mock factory.
var newApp = func() (App, error) {
	return app.New(cfgFile)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkforge",
		Short: "Generates social-preview redirect pages and deploys them via git.",
		Long: `linkforge builds a static page that shows one URL's social preview
(title, description, image) to crawlers while immediately redirecting
browsers to a different destination. The generated file can be committed
and pushed so a static host redeploys it automatically.`,
		SilenceUsage: true,

		// Build and inject the application before any subcommand runs.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp()
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		// Shut services down once the subcommand finishes.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; defaults plus LINKFORGE_* env vars otherwise)")

	cmd.AddCommand(newGenerateCmd(), newDeployCmd(), newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}
