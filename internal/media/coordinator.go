package media

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/metrics"
)

const defaultDeleteTimeout = 15 * time.Second

// Coordinator orchestrates the multi-step flows between the remote asset
// store and the record repositories. It never persists anything itself:
// Attach returns handles and the lifecycle services decide what to do with
// them, so a record can never reference a half-uploaded asset.
type Coordinator struct {
	store         AssetStore
	logger        *logger.Logger
	metrics       *metrics.MetricsManager
	deleteTimeout time.Duration

	// tracks in-flight detach goroutines so shutdown can drain them
	inflight sync.WaitGroup
}

// NewCoordinator creates a Coordinator. metrics may be nil in tests.
func NewCoordinator(store AssetStore, log *logger.Logger, m *metrics.MetricsManager) *Coordinator {
	return &Coordinator{
		store:         store,
		logger:        log.Named("MediaCoordinator"),
		metrics:       m,
		deleteTimeout: defaultDeleteTimeout,
	}
}

// Attach uploads every file in the batch concurrently. A failing upload does
// not abort its siblings; if any file fails the batch is reported as a
// *PartialFailure carrying the handles that did succeed alongside the
// per-file errors, so the caller can retry selectively.
func (c *Coordinator) Attach(ctx context.Context, files []File) ([]AssetHandle, error) {
	if len(files) == 0 {
		return nil, nil
	}

	handles := make([]AssetHandle, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			if c.metrics != nil {
				c.metrics.AssetUploadsTotal.Inc()
			}
			handle, err := c.store.Upload(ctx, f)
			if err != nil {
				if c.metrics != nil {
					c.metrics.AssetUploadFailures.Inc()
				}
				c.logger.Warn("upload failed", zap.String("file", f.Name), zap.Error(err))
				errs[i] = err
				return
			}
			handles[i] = handle
		}(i, f)
	}
	wg.Wait()

	var uploaded []AssetHandle
	var failed []FileError
	for i := range files {
		if errs[i] != nil {
			failed = append(failed, FileError{Name: files[i].Name, Err: errs[i]})
			continue
		}
		uploaded = append(uploaded, handles[i])
	}

	if len(failed) > 0 {
		return nil, &PartialFailure{Uploaded: uploaded, Failed: failed}
	}
	return uploaded, nil
}

// Detach schedules remote deletion for handles whose local references are
// already gone. Deletions are fire-and-forget: each runs in its own goroutine
// with its own timeout, detached from the caller's context, and a failure is
// recorded as an orphan rather than surfaced. Local record consistency never
// waits on remote cleanup.
func (c *Coordinator) Detach(handles []AssetHandle) {
	for _, h := range handles {
		if h.DeleteKey == "" {
			continue
		}
		c.inflight.Add(1)
		go func(h AssetHandle) {
			defer c.inflight.Done()
			ctx, cancel := context.WithTimeout(context.Background(), c.deleteTimeout)
			defer cancel()

			if c.metrics != nil {
				c.metrics.AssetDeletesTotal.Inc()
			}
			if err := c.store.Delete(ctx, h.DeleteKey); err != nil {
				if c.metrics != nil {
					c.metrics.OrphanedAssetsTotal.Inc()
				}
				c.logger.Warn("orphaned asset: remote deletion failed",
					zap.String("delete_key", h.DeleteKey),
					zap.String("url", h.URL),
					zap.Error(err))
			}
		}(h)
	}
}

// Drain blocks until all dispatched deletions have finished. Used at shutdown
// and in tests; request paths never call it.
func (c *Coordinator) Drain() {
	c.inflight.Wait()
}
