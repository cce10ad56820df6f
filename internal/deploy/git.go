// Package deploy publishes generated pages through the git CLI so static
// hosts watching the remote redeploy automatically.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Outcome distinguishes a real publish from a clean no-op. Failures travel
// as errors alongside it; the three cases never collapse into a bool.
type Outcome int

const (
	// OutcomeNoChanges means the working tree had nothing to commit.
	OutcomeNoChanges Outcome = iota
	// OutcomePublished means a commit was created and pushed.
	OutcomePublished
)

func (o Outcome) String() string {
	if o == OutcomePublished {
		return "published"
	}
	return "no_changes"
}

const defaultCommitMessage = "Actualizar link preview"

// DefaultMessage builds the commit message used when the caller supplies
// none, suffixed with a prefix of the page title when available.
func DefaultMessage(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return defaultCommitMessage
	}
	const maxTitle = 30
	if runes := []rune(title); len(runes) > maxTitle {
		title = string(runes[:maxTitle])
	}
	return fmt.Sprintf("%s: %s", defaultCommitMessage, title)
}

// GitClient drives the git binary for staging, committing, and pushing.
// All operations run in the configured working directory.
type GitClient struct {
	runner Runner
	dir    string
	logger *zap.Logger
}

// NewGitClient returns a client executing the real git binary in dir
// (empty dir means the current working directory).
func NewGitClient(dir string, logger *zap.Logger) *GitClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitClient{runner: execRunner{}, dir: dir, logger: logger}
}

func (c *GitClient) args(sub ...string) []string {
	if c.dir == "" {
		return sub
	}
	return append([]string{"-C", c.dir}, sub...)
}

// Installed reports whether a git binary is reachable.
func (c *GitClient) Installed(ctx context.Context) bool {
	_, err := c.runner.Run(ctx, "git", "--version")
	return err == nil
}

// IsRepo reports whether the working directory is inside a git repository.
func (c *GitClient) IsRepo(ctx context.Context) bool {
	_, err := c.runner.Run(ctx, "git", c.args("rev-parse", "--git-dir")...)
	return err == nil
}

// InitRepo bootstraps a fresh repository pointed at remoteURL with a main
// branch, matching what static hosts expect.
func (c *GitClient) InitRepo(ctx context.Context, remoteURL string) error {
	if remoteURL == "" {
		return fmt.Errorf("remote url must be set")
	}
	if _, err := c.runner.Run(ctx, "git", c.args("init")...); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	if _, err := c.runner.Run(ctx, "git", c.args("remote", "add", "origin", remoteURL)...); err != nil {
		return fmt.Errorf("add remote: %w", err)
	}
	if _, err := c.runner.Run(ctx, "git", c.args("branch", "-M", "main")...); err != nil {
		return fmt.Errorf("rename branch: %w", err)
	}
	c.logger.Info("Repository initialized", zap.String("remote", remoteURL))
	return nil
}

// HasPendingChanges reports whether path has staged or unstaged changes.
func (c *GitClient) HasPendingChanges(ctx context.Context, path string) (bool, error) {
	out, err := c.runner.Run(ctx, "git", c.args("status", "--porcelain", "--", path)...)
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// StageAndCommit stages path and commits it with message.
func (c *GitClient) StageAndCommit(ctx context.Context, path, message string) error {
	if _, err := c.runner.Run(ctx, "git", c.args("add", path)...); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	if _, err := c.runner.Run(ctx, "git", c.args("commit", "-m", message)...); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Push publishes the current branch to its configured remote.
func (c *GitClient) Push(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "git", c.args("push")...); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	return nil
}

// Publish stages path, and if anything actually changed, commits and pushes
// it. A clean tree is reported as OutcomeNoChanges, not as an error.
func (c *GitClient) Publish(ctx context.Context, path, message string) (Outcome, error) {
	if _, err := c.runner.Run(ctx, "git", c.args("add", path)...); err != nil {
		return OutcomeNoChanges, fmt.Errorf("stage %s: %w", path, err)
	}

	pending, err := c.HasPendingChanges(ctx, path)
	if err != nil {
		return OutcomeNoChanges, err
	}
	if !pending {
		c.logger.Info("Nothing to publish; working tree is clean", zap.String("path", path))
		return OutcomeNoChanges, nil
	}

	if _, err := c.runner.Run(ctx, "git", c.args("commit", "-m", message)...); err != nil {
		return OutcomeNoChanges, fmt.Errorf("commit: %w", err)
	}
	if err := c.Push(ctx); err != nil {
		return OutcomeNoChanges, err
	}

	c.logger.Info("Page pushed", zap.String("path", path), zap.String("message", message))
	return OutcomePublished, nil
}
