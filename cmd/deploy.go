package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linkforge/linkforge/internal/deploy"
	"github.com/linkforge/linkforge/internal/metrics"
)

// newDeployCmd creates and configures the 'deploy' subcommand for pushing a
// previously generated page without regenerating it.
func newDeployCmd() *cobra.Command {
	var (
		message    string
		initRemote string
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Commits and pushes the generated page",
		Long: `Stages the generated page, commits it, and pushes to the configured
remote so a static host redeploys. A clean working tree is reported as
"nothing to do", not as a failure.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeploy(cmd, message, initRemote)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&initRemote, "init-remote", "", "bootstrap a repository pointed at this remote URL before deploying")

	return cmd
}

func runDeploy(cmd *cobra.Command, message, initRemote string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.Logger()
	cfg := appInstance.Config()
	ctx := cmd.Context()

	client := deploy.NewGitClient(cfg.Deploy.WorkDir, logger)
	if !client.Installed(ctx) {
		return errors.New("git is not installed; see https://git-scm.com/downloads")
	}

	if initRemote != "" {
		if err := client.InitRepo(ctx, initRemote); err != nil {
			return err
		}
	}
	if !client.IsRepo(ctx) {
		return errors.New("not inside a git repository; rerun with --init-remote URL or run 'git init' yourself")
	}

	path := filepath.Join(cfg.Generator.OutputDir, cfg.Generator.OutputFile)
	outcome, err := client.Publish(ctx, path, commitMessage(message, cfg, ""))
	if err != nil {
		metrics.ObserveDeploy("error")
		return fmt.Errorf("publish page: %w", err)
	}
	metrics.ObserveDeploy(outcome.String())

	if outcome == deploy.OutcomePublished {
		logger.Info("Deploy finished; static host will redeploy shortly", zap.String("path", path))
	}
	return nil
}
