package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linkforge/linkforge/internal/config"
	"github.com/linkforge/linkforge/internal/deploy"
	"github.com/linkforge/linkforge/internal/id/uuid"
	"github.com/linkforge/linkforge/internal/metadata"
	"github.com/linkforge/linkforge/internal/metrics"
	"github.com/linkforge/linkforge/internal/render"
	"github.com/linkforge/linkforge/internal/sink"
	"github.com/linkforge/linkforge/internal/urlutil"
)

type generateOptions struct {
	visibleURL  string
	redirectURL string
	outDir      string
	message     string
	useLast     bool
	push        bool
}

// newGenerateCmd creates and configures the 'generate' subcommand. It is the
// whole pipeline: resolve metadata for the visible URL, render the redirect
// page, write it, remember the URL pair, and optionally publish.
func newGenerateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Builds the redirect page for a visible/redirect URL pair",
		Long: `Fetches the visible URL's social-preview metadata and writes a static
page that presents it to crawlers while sending browsers to the redirect
URL. With --push the file is also committed and pushed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.visibleURL, "visible", "", "URL whose social preview the page shows")
	cmd.Flags().StringVar(&opts.redirectURL, "redirect", "", "URL the browser is sent to")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (overrides generator.output_dir)")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "commit message used with --push")
	cmd.Flags().BoolVar(&opts.useLast, "use-last", false, "reuse the URL pair from the previous run")
	cmd.Flags().BoolVar(&opts.push, "push", false, "commit and push the generated file after writing it")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.Logger()
	cfg := appInstance.Config()
	if opts.outDir != "" {
		cfg.Generator.OutputDir = opts.outDir
	}

	visible, redirect, err := resolveURLPair(opts, cfg)
	if err != nil {
		return err
	}

	buildID, err := uuid.NewGenerator().NewID()
	if err != nil {
		return fmt.Errorf("generate build id: %w", err)
	}

	result, err := resolveMetadata(cmd.Context(), cfg, logger, visible, buildID)
	if err != nil {
		return err
	}

	path, err := writePage(cmd.Context(), cfg, logger, render.PageData{
		VisibleURL:  visible,
		RedirectURL: redirect,
		Title:       result.Title,
		Description: result.Description,
		ImageURL:    result.ImageURL,
		BuildID:     buildID,
	}, result)
	if err != nil {
		return err
	}

	statePath := config.LastRunPath(cfg.Generator.OutputDir)
	if err := config.SaveLastRun(statePath, config.LastRun{
		VisibleURL:  visible,
		RedirectURL: redirect,
	}); err != nil {
		// The page already exists; losing the convenience state is not fatal.
		logger.Warn("Failed to save last-run state", zap.Error(err))
	}

	logger.Info("Page generated",
		zap.String("path", path),
		zap.String("visible_url", visible),
		zap.String("redirect_url", redirect),
		zap.String("title", result.Title),
		zap.Bool("image_found", result.ImageURL != ""),
	)

	if !opts.push {
		return nil
	}
	return publishPage(cmd.Context(), cfg, logger, path, commitMessage(opts.message, cfg, result.Title))
}

// resolveURLPair merges flags with the persisted last-run state and
// validates the schemes before anything touches the network.
func resolveURLPair(opts generateOptions, cfg config.Config) (string, string, error) {
	visible, redirect := opts.visibleURL, opts.redirectURL

	if opts.useLast {
		last, err := config.LoadLastRun(config.LastRunPath(cfg.Generator.OutputDir))
		if err != nil {
			return "", "", fmt.Errorf("load last-run state: %w", err)
		}
		if visible == "" {
			visible = last.VisibleURL
		}
		if redirect == "" {
			redirect = last.RedirectURL
		}
	}

	if visible == "" || redirect == "" {
		return "", "", errors.New("both --visible and --redirect are required (or --use-last)")
	}
	for _, raw := range []string{visible, redirect} {
		if err := urlutil.RequireHTTP(raw); err != nil {
			return "", "", err
		}
	}

	visible, err := urlutil.Normalize(visible)
	if err != nil {
		return "", "", fmt.Errorf("normalize visible url: %w", err)
	}
	redirect, err = urlutil.Normalize(redirect)
	if err != nil {
		return "", "", fmt.Errorf("normalize redirect url: %w", err)
	}
	return visible, redirect, nil
}

func resolveMetadata(ctx context.Context, cfg config.Config, logger *zap.Logger, visible, buildID string) (metadata.Result, error) {
	fetcher, err := metadata.NewCollyFetcher(metadata.FetchConfig{
		UserAgent:    cfg.Resolver.UserAgent,
		Timeout:      cfg.Resolver.Timeout,
		MaxBodyBytes: cfg.Resolver.MaxBodyBytes,
	}, logger)
	if err != nil {
		return metadata.Result{}, fmt.Errorf("init fetcher: %w", err)
	}
	resolver := metadata.NewResolver(fetcher, logger)

	logger.Info("Resolving metadata", zap.String("url", visible), zap.String("build_id", buildID))
	start := time.Now()
	result, err := resolver.Resolve(ctx, visible)
	if err != nil {
		metrics.ObserveResolve("error", time.Since(start))
		return metadata.Result{}, fmt.Errorf("resolve metadata: %w", err)
	}
	metrics.ObserveResolve("ok", time.Since(start))
	return result, nil
}

func writePage(ctx context.Context, cfg config.Config, logger *zap.Logger, data render.PageData, result metadata.Result) (string, error) {
	renderer, err := render.New()
	if err != nil {
		return "", fmt.Errorf("init renderer: %w", err)
	}
	page, err := renderer.Render(data)
	if err != nil {
		return "", err
	}

	out, err := sink.NewFileSink(cfg.Generator.OutputDir, cfg.Generator.OutputFile, cfg.Generator.MaxPageBytes, logger)
	if err != nil {
		return "", err
	}
	path, err := out.SavePage(ctx, page)
	if err != nil {
		return "", err
	}
	if err := out.SaveArtifact(ctx, sink.Artifact{
		VisibleURL:  data.VisibleURL,
		RedirectURL: data.RedirectURL,
		Metadata:    result,
		BuildID:     data.BuildID,
		GeneratedAt: time.Now().UTC(),
		Path:        path,
	}); err != nil {
		return "", err
	}
	metrics.PageGenerated()
	return path, nil
}

func publishPage(ctx context.Context, cfg config.Config, logger *zap.Logger, path, message string) error {
	client := deploy.NewGitClient(cfg.Deploy.WorkDir, logger)
	if !client.Installed(ctx) {
		return errors.New("git is not installed")
	}
	if !client.IsRepo(ctx) {
		return errors.New("not inside a git repository; run 'linkforge deploy --init-remote URL' first")
	}

	outcome, err := client.Publish(ctx, path, message)
	if err != nil {
		metrics.ObserveDeploy("error")
		return fmt.Errorf("publish page: %w", err)
	}
	metrics.ObserveDeploy(outcome.String())
	return nil
}

func commitMessage(flag string, cfg config.Config, title string) string {
	if flag != "" {
		return flag
	}
	if cfg.Deploy.CommitMessage != "" {
		return cfg.Deploy.CommitMessage
	}
	return deploy.DefaultMessage(title)
}
