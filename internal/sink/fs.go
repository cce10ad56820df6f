// Package sink persists rendered pages and their generation records to disk.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linkforge/linkforge/internal/metadata"
)

// Artifact records what a generation run produced, written as a JSON sidecar
// next to the page.
type Artifact struct {
	VisibleURL  string          `json:"visible_url"`
	RedirectURL string          `json:"redirect_url"`
	Metadata    metadata.Result `json:"metadata"`
	BuildID     string          `json:"build_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Path        string          `json:"path"`
}

// FileSink writes the generated page and its sidecar into one directory.
type FileSink struct {
	root     string
	file     string
	maxBytes int64
	logger   *zap.Logger
}

// NewFileSink returns a sink rooted at dir, writing pages named file.
func NewFileSink(dir, file string, maxBytes int64, logger *zap.Logger) (*FileSink, error) {
	if file == "" {
		return nil, fmt.Errorf("output file name must be set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &FileSink{
		root:     dir,
		file:     file,
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// PagePath is where SavePage writes.
func (s *FileSink) PagePath() string {
	return filepath.Join(s.root, s.file)
}

// SavePage writes the rendered document and returns its path.
func (s *FileSink) SavePage(ctx context.Context, body []byte) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("empty page body")
	}
	if s.maxBytes > 0 && int64(len(body)) > s.maxBytes {
		return "", fmt.Errorf("page size %d exceeds max %d", len(body), s.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context canceled: %w", err)
	}
	target := s.PagePath()
	if err := os.WriteFile(target, body, 0o600); err != nil {
		return "", fmt.Errorf("writing page to %s: %w", target, err)
	}
	s.logger.Debug("Page written", zap.String("path", target), zap.Int("bytes", len(body)))
	return target, nil
}

// SaveArtifact writes the generation record next to the page.
func (s *FileSink) SaveArtifact(ctx context.Context, artifact Artifact) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if artifact.Path == "" {
		artifact.Path = s.PagePath()
	}
	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	target := s.artifactPath()
	if err := os.WriteFile(target, payload, 0o600); err != nil {
		return fmt.Errorf("write artifact %s: %w", target, err)
	}
	return nil
}

func (s *FileSink) artifactPath() string {
	page := s.PagePath()
	return strings.TrimSuffix(page, filepath.Ext(page)) + ".json"
}
