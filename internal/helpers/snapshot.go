package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orisano/pixelmatch"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	"github.com/storefront-qa/sauce-e2e/internal/config"
)

// SnapshotMismatchError reports a screenshot that differs from its baseline.
type SnapshotMismatchError struct {
	Name        string
	Reason      string
	DiffPixels  int
	TotalPixels int
	Allowed     int
	ActualPath  string
}

func (e *SnapshotMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("snapshot %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("snapshot %s: %d of %d pixels differ (allowed %d)", e.Name, e.DiffPixels, e.TotalPixels, e.Allowed)
}

// Snapshotter compares screenshots with baselines stored under Dir.
//
// A missing baseline is written and the comparison passes. With Update set
// every comparison rewrites its baseline.
type Snapshotter struct {
	Dir               string
	Update            bool
	MaxDiffPixels     int
	MaxDiffPixelRatio float64

	logger *zap.Logger
}

// NewSnapshotter reads the baseline directory and update mode from cfg.
func NewSnapshotter(cfg *config.SuiteConfig, logger *zap.Logger) *Snapshotter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshotter{
		Dir:    cfg.SnapshotDir,
		Update: cfg.UpdateSnapshots,
		logger: logger.Named("snapshot"),
	}
}

// SnapshotOption adjusts a single TakeVisualSnapshot call.
type SnapshotOption func(*snapshotOptions)

type snapshotOptions struct {
	fullPage          bool
	maxDiffPixels     int
	maxDiffPixelRatio float64
}

// ViewportOnly captures the visible viewport instead of the full page.
func ViewportOnly() SnapshotOption {
	return func(o *snapshotOptions) { o.fullPage = false }
}

func WithMaxDiffPixels(n int) SnapshotOption {
	return func(o *snapshotOptions) { o.maxDiffPixels = n }
}

func WithMaxDiffPixelRatio(r float64) SnapshotOption {
	return func(o *snapshotOptions) { o.maxDiffPixelRatio = r }
}

// Path returns the baseline location for a label.
func (s *Snapshotter) Path(name string) string {
	return filepath.Join(s.Dir, ToSnapshotFilename(name))
}

// Compare checks actual against the baseline for name using the
// Snapshotter's thresholds.
func (s *Snapshotter) Compare(name string, actual []byte) error {
	return s.compare(name, actual, s.MaxDiffPixels, s.MaxDiffPixelRatio)
}

func (s *Snapshotter) compare(name string, actual []byte, maxDiffPixels int, maxDiffPixelRatio float64) error {
	path := s.Path(name)
	logger := s.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	expected, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && s.Update) {
		if err := writeFile(path, actual); err != nil {
			return err
		}
		logger.Info("baseline written", zap.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read baseline: %w", err)
	}

	want, err := png.Decode(bytes.NewReader(expected))
	if err != nil {
		return fmt.Errorf("failed to decode baseline %s: %w", path, err)
	}
	got, err := png.Decode(bytes.NewReader(actual))
	if err != nil {
		return fmt.Errorf("failed to decode screenshot %s: %w", name, err)
	}

	mismatch, err := diff(want, got, maxDiffPixels, maxDiffPixelRatio)
	if err != nil {
		return err
	}
	if mismatch == nil {
		return nil
	}
	mismatch.Name = filepath.Base(path)
	mismatch.ActualPath = strings.TrimSuffix(path, ".png") + "-actual.png"
	if err := writeFile(mismatch.ActualPath, actual); err != nil {
		return err
	}
	logger.Warn("snapshot mismatch", zap.String("path", path), zap.Int("diffPixels", mismatch.DiffPixels))
	return mismatch
}

// allowedDiff mirrors the usual screenshot-assertion rule: when both limits
// are set the stricter one wins, an unset limit is ignored and no limit means zero.
func allowedDiff(total, maxDiffPixels int, maxDiffPixelRatio float64) int {
	byRatio := -1
	if maxDiffPixelRatio > 0 {
		byRatio = int(float64(total) * maxDiffPixelRatio)
	}
	switch {
	case maxDiffPixels > 0 && byRatio >= 0:
		return min(maxDiffPixels, byRatio)
	case maxDiffPixels > 0:
		return maxDiffPixels
	case byRatio >= 0:
		return byRatio
	default:
		return 0
	}
}

// pixelThreshold is the per-pixel color distance, from 0 to 1, below which
// two pixels count as equal. Anti-aliased pixels are never counted.
const pixelThreshold = 0.2

func diff(want, got image.Image, maxDiffPixels int, maxDiffPixelRatio float64) (*SnapshotMismatchError, error) {
	wb, gb := want.Bounds(), got.Bounds()
	if wb.Dx() != gb.Dx() || wb.Dy() != gb.Dy() {
		return &SnapshotMismatchError{
			Reason: fmt.Sprintf("size changed from %dx%d to %dx%d", wb.Dx(), wb.Dy(), gb.Dx(), gb.Dy()),
		}, nil
	}

	differing, err := pixelmatch.MatchPixel(want, got, pixelmatch.Threshold(pixelThreshold))
	if err != nil {
		return nil, fmt.Errorf("failed to compare images: %w", err)
	}

	total := wb.Dx() * wb.Dy()
	allowed := allowedDiff(total, maxDiffPixels, maxDiffPixelRatio)
	if differing <= allowed {
		return nil, nil
	}
	return &SnapshotMismatchError{DiffPixels: differing, TotalPixels: total, Allowed: allowed}, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// TakeVisualSnapshot screenshots session and compares it with the baseline
// named after name. A mismatch is recorded on t; the returned error is an
// automation or filesystem failure.
func (s *Snapshotter) TakeVisualSnapshot(t testing.TB, session browser.Session, name string, opts ...SnapshotOption) error {
	t.Helper()

	o := snapshotOptions{
		fullPage:          true,
		maxDiffPixels:     s.MaxDiffPixels,
		maxDiffPixelRatio: s.MaxDiffPixelRatio,
	}
	for _, opt := range opts {
		opt(&o)
	}

	shot, err := session.Screenshot(o.fullPage)
	if err != nil {
		return err
	}

	err = s.compare(name, shot, o.maxDiffPixels, o.maxDiffPixelRatio)
	var mismatch *SnapshotMismatchError
	if errors.As(err, &mismatch) {
		assert.Fail(t, mismatch.Error(), "actual screenshot written to %s", mismatch.ActualPath)
		return nil
	}
	return err
}
