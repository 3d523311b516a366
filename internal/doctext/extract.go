package doctext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"shifttrack/internal/config"
	"shifttrack/internal/logging"
)

// ErrUnreadable reports a document the converter could not process.
var ErrUnreadable = errors.New("could not read document")

// Extractor runs pdftotext against paystub documents.
type Extractor struct {
	binary   string
	timeout  time.Duration
	maxBytes int64
	logger   *slog.Logger
}

// New builds an Extractor from application config.
func New(cfg *config.Config, logger *slog.Logger) *Extractor {
	return &Extractor{
		binary:   cfg.PdftotextBinary(),
		timeout:  time.Duration(cfg.Audit.ExtractTimeout) * time.Second,
		maxBytes: int64(cfg.Audit.MaxDocumentMiB) << 20,
		logger:   logging.NewComponentLogger(logger, "doctext"),
	}
}

// Extract converts the document at path to plain text. The -layout flag
// preserves tabular alignment so downstream field rules can rely on line
// structure.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if e.maxBytes > 0 && info.Size() > e.maxBytes {
		return "", fmt.Errorf("%w: document is %d bytes, limit is %d", ErrUnreadable, info.Size(), e.maxBytes)
	}

	out, err := os.CreateTemp("", "shifttrack-doctext-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp output: %w", err)
	}
	outPath := out.Name()
	_ = out.Close()
	defer os.Remove(outPath)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := []string{"-layout", "-enc", "UTF-8", path, outPath}
	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		e.logger.Warn("document conversion failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String("output", strings.TrimSpace(string(output))),
		)
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read converted text: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", ErrUnreadable
	}
	return text, nil
}
