package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultTotal is the fallback character count used when the catalog cannot
// be reached during startup. It matches the catalog size at the time this
// value was last reviewed.
const DefaultTotal = 826

// Totals holds the catalog-wide character count. Zero means "not loaded
// yet"; pack opening refuses to run until a count is available, and progress
// math treats zero as 0% rather than dividing by it.
type Totals struct {
	mu    sync.RWMutex
	total int
}

func NewTotals() *Totals {
	return &Totals{}
}

func (t *Totals) Total() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

func (t *Totals) set(total int) {
	t.mu.Lock()
	t.total = total
	t.mu.Unlock()
}

// Refresh fetches the current count from the catalog with exponential
// backoff and stores it on success.
func (t *Totals) Refresh(ctx context.Context, client Client) error {
	backoff := retry.WithMaxRetries(4, retry.NewExponential(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		count, err := client.GetTotalCount(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		if count <= 0 {
			return retry.RetryableError(fmt.Errorf("catalog reported non-positive count %d", count))
		}
		t.set(count)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to refresh catalog total: %w", err)
	}

	slog.Info("Catalog total refreshed",
		slog.String("type", "sys"),
		slog.Int("total", t.Total()))
	return nil
}

// Bootstrap loads the count at startup. A failure is not fatal: the fallback
// total keeps pack opening alive, with a warning so operators notice.
func (t *Totals) Bootstrap(ctx context.Context, client Client) {
	if err := t.Refresh(ctx, client); err != nil {
		slog.Warn("Catalog unreachable at startup, using fallback total",
			slog.String("type", "sys"),
			slog.Int("fallback", DefaultTotal),
			slog.Any("error", err))
		t.set(DefaultTotal)
	}
}

// StartRefreshLoop re-checks the count on the given interval until ctx is
// cancelled, so a newly published character eventually widens the draw range.
func (t *Totals) StartRefreshLoop(ctx context.Context, client Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshCtx, cancel := context.WithTimeout(ctx, time.Minute)
				if err := t.Refresh(refreshCtx, client); err != nil {
					slog.Warn("Catalog total refresh failed",
						slog.String("type", "sys"),
						slog.Any("error", err))
				}
				cancel()
			}
		}
	}()
}
