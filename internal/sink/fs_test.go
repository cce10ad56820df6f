package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkforge/linkforge/internal/metadata"
)

func TestSavePageWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileSink(dir, "index.html", 1024, nil)
	require.NoError(t, err)

	path, err := s.SavePage(context.Background(), []byte("<html></html>"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "index.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))
}

func TestSavePageRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	s, err := NewFileSink(t.TempDir(), "index.html", 4, nil)
	require.NoError(t, err)

	_, err = s.SavePage(context.Background(), []byte("too big"))
	require.Error(t, err)
}

func TestSavePageRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	s, err := NewFileSink(t.TempDir(), "index.html", 1024, nil)
	require.NoError(t, err)

	_, err = s.SavePage(context.Background(), nil)
	require.Error(t, err)
}

func TestSaveArtifactWritesSidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := NewFileSink(dir, "index.html", 1024, nil)
	require.NoError(t, err)

	artifact := Artifact{
		VisibleURL:  "https://visible.test/",
		RedirectURL: "https://hidden.test/",
		Metadata:    metadata.Result{Title: "t", Description: "d"},
		BuildID:     "b-1",
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, s.SaveArtifact(context.Background(), artifact))

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)

	var got Artifact
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, artifact.VisibleURL, got.VisibleURL)
	require.Equal(t, artifact.Metadata.Title, got.Metadata.Title)
	require.Equal(t, filepath.Join(dir, "index.html"), got.Path)
}
