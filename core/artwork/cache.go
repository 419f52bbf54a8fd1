package artwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"shortcut-sync/core/provider"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Status is the outcome of one kind during Populate.
type Status string

const (
	// StatusFetched means the image was downloaded.
	StatusFetched Status = "fetched"
	// StatusCached means a file already existed and nothing was requested.
	StatusCached Status = "cached"
	// StatusNoMatch means the provider had no suitable candidate.
	StatusNoMatch Status = "no_match"
	// StatusUnsupported means the chosen candidate has an unknown extension.
	StatusUnsupported Status = "unsupported"
	// StatusFailed means a provider call or the write failed.
	StatusFailed Status = "failed"
)

// KindResult is the outcome of one kind.
type KindResult struct {
	Kind   provider.Kind `json:"kind"`
	Status Status        `json:"status"`
	Path   string        `json:"path,omitempty"`
	URL    string        `json:"url,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// Report collects the per-kind outcomes of one Populate call.
type Report struct {
	AppID   uint32       `json:"app_id"`
	Results []KindResult `json:"results"`
}

// Count returns how many kinds ended with status.
func (r Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Cache fills and prunes a grid directory.
type Cache struct {
	dir      string
	provider provider.ImageProvider
	logger   *zap.Logger
}

// New creates a cache over dir. p may be nil, in which case Populate only reports
// cached kinds.
func New(dir string, p provider.ImageProvider, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{dir: dir, provider: p, logger: logger}
}

// Existing returns the path of a cached file for kind, if any.
func (c *Cache) Existing(appID uint32, kind provider.Kind) (string, bool) {
	for _, ext := range Extensions {
		path := filepath.Join(c.dir, FileName(appID, kind, ext))
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Populate fetches every missing kind of artwork for appID from provider game gameID.
// Failures are recorded per kind and never stop the remaining kinds.
func (c *Cache) Populate(ctx context.Context, appID uint32, gameID int) Report {
	report := Report{AppID: appID}
	for _, kind := range provider.Kinds {
		res := c.populateKind(ctx, appID, gameID, kind)
		report.Results = append(report.Results, res)

		fields := []zap.Field{
			zap.Uint32("app_id", appID),
			zap.String("kind", string(kind)),
			zap.String("status", string(res.Status)),
		}
		if res.Reason != "" {
			fields = append(fields, zap.String("reason", res.Reason))
		}
		if res.Status == StatusFailed {
			c.logger.Warn("Artwork not saved", fields...)
		} else {
			c.logger.Debug("Artwork processed", fields...)
		}
	}
	return report
}

func (c *Cache) populateKind(ctx context.Context, appID uint32, gameID int, kind provider.Kind) KindResult {
	res := KindResult{Kind: kind}

	if path, ok := c.Existing(appID, kind); ok {
		res.Status, res.Path = StatusCached, path
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Status, res.Reason = StatusFailed, err.Error()
		return res
	}
	if c.provider == nil {
		res.Status, res.Reason = StatusFailed, "no provider configured"
		return res
	}

	images, err := c.provider.FetchURLs(ctx, gameID, kind)
	if err != nil {
		res.Status, res.Reason = StatusFailed, err.Error()
		return res
	}

	img, ok := choose(images, kind)
	if !ok {
		res.Status = StatusNoMatch
		return res
	}
	res.URL = img.URL

	ext := extensionOf(img.URL)
	if !knownExtension(ext) {
		res.Status, res.Reason = StatusUnsupported, fmt.Sprintf("unsupported extension %q", ext)
		return res
	}

	path := filepath.Join(c.dir, FileName(appID, kind, ext))
	size, err := c.download(ctx, img.URL, path)
	if err != nil {
		res.Status, res.Reason = StatusFailed, err.Error()
		return res
	}

	c.logger.Info("Artwork downloaded",
		zap.String("kind", string(kind)),
		zap.String("path", path),
		zap.String("size", humanize.Bytes(uint64(size))))
	res.Status, res.Path = StatusFetched, path
	return res
}

// choose applies the size filter for grid and home, and takes the first candidate otherwise.
func choose(images []provider.Image, kind provider.Kind) (provider.Image, bool) {
	size, filtered := RequiredSize(kind)
	for _, img := range images {
		if !filtered || (img.Width == size.Width && img.Height == size.Height) {
			return img, true
		}
	}
	return provider.Image{}, false
}

func (c *Cache) download(ctx context.Context, url, path string) (int64, error) {
	body, err := c.provider.Download(ctx, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create grid directory: %w", err)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return n, nil
}

// Evict removes every artwork file of appID and returns the removed paths.
// Files that do not exist are skipped.
func (c *Cache) Evict(appID uint32) ([]string, error) {
	var removed []string
	var errs error
	for _, kind := range provider.Kinds {
		for _, ext := range Extensions {
			path := filepath.Join(c.dir, FileName(appID, kind, ext))
			err := os.Remove(path)
			switch {
			case err == nil:
				removed = append(removed, path)
			case errors.Is(err, os.ErrNotExist):
			default:
				errs = multierr.Append(errs, err)
			}
		}
	}
	if len(removed) > 0 {
		c.logger.Info("Artwork evicted", zap.Uint32("app_id", appID), zap.Int("files", len(removed)))
	}
	return removed, errs
}
