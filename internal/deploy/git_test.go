package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRunner scripts git responses keyed by the joined argument list and
// records every invocation.
type fakeRunner struct {
	responses map[string]string
	failures  map[string]error
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if err, ok := f.failures[key]; ok {
		return "", err
	}
	return f.responses[key], nil
}

func newTestClient(runner Runner) *GitClient {
	return &GitClient{runner: runner, logger: zap.NewNop()}
}

func TestPublishCleanTreeIsNoOp(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]string{
		"git status --porcelain -- index.html": "",
	}}
	c := newTestClient(runner)

	outcome, err := c.Publish(context.Background(), "index.html", "msg")
	require.NoError(t, err)
	require.Equal(t, OutcomeNoChanges, outcome)

	for _, call := range runner.calls {
		require.NotContains(t, call, "commit")
		require.NotContains(t, call, "push")
	}
}

func TestPublishCommitsAndPushes(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]string{
		"git status --porcelain -- index.html": " M index.html\n",
	}}
	c := newTestClient(runner)

	outcome, err := c.Publish(context.Background(), "index.html", "Actualizar link preview")
	require.NoError(t, err)
	require.Equal(t, OutcomePublished, outcome)
	require.Equal(t, []string{
		"git add index.html",
		"git status --porcelain -- index.html",
		"git commit -m Actualizar link preview",
		"git push",
	}, runner.calls)
}

func TestPublishPushFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		responses: map[string]string{
			"git status --porcelain -- index.html": " M index.html\n",
		},
		failures: map[string]error{
			"git push": errors.New("remote rejected"),
		},
	}
	c := newTestClient(runner)

	_, err := c.Publish(context.Background(), "index.html", "msg")
	require.ErrorContains(t, err, "push")
}

func TestClientUsesWorkDir(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]string{}}
	c := &GitClient{runner: runner, dir: "/srv/site", logger: zap.NewNop()}

	_, err := c.HasPendingChanges(context.Background(), "index.html")
	require.NoError(t, err)
	require.Equal(t, []string{"git -C /srv/site status --porcelain -- index.html"}, runner.calls)
}

func TestInitRepo(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]string{}}
	c := newTestClient(runner)

	require.NoError(t, c.InitRepo(context.Background(), "git@github.com:me/preview.git"))
	require.Equal(t, []string{
		"git init",
		"git remote add origin git@github.com:me/preview.git",
		"git branch -M main",
	}, runner.calls)

	require.Error(t, c.InitRepo(context.Background(), ""))
}

func TestInstalledAndIsRepo(t *testing.T) {
	t.Parallel()

	ok := newTestClient(&fakeRunner{responses: map[string]string{}})
	require.True(t, ok.Installed(context.Background()))
	require.True(t, ok.IsRepo(context.Background()))

	broken := newTestClient(&fakeRunner{failures: map[string]error{
		"git --version":           errors.New("not found"),
		"git rev-parse --git-dir": errors.New("not a repo"),
	}})
	require.False(t, broken.Installed(context.Background()))
	require.False(t, broken.IsRepo(context.Background()))
}

func TestDefaultMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Actualizar link preview", DefaultMessage("  "))
	require.Equal(t, "Actualizar link preview: Oferta", DefaultMessage("Oferta"))

	long := strings.Repeat("a", 50)
	got := DefaultMessage(long)
	require.Equal(t, "Actualizar link preview: "+strings.Repeat("a", 30), got)
}
