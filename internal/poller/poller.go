package poller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tableside/internal/api"
	"tableside/internal/logger"
	"tableside/internal/store"
)

// Refresher periodically re-fetches the bound order (and its table) and
// merges the result into the state store, converging this terminal with
// whatever the kitchen or other viewers changed. It is best-effort:
// last fetch wins, except that any snapshot older than a local mutation
// is discarded by the store's generation check.
//
// A tick that fires while the previous fetch is still outstanding is
// skipped, never queued.
type Refresher struct {
	gateway  api.Gateway
	state    *store.OrderState
	log      *logger.Logger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	busy   atomic.Bool
}

func NewRefresher(gateway api.Gateway, state *store.OrderState, log *logger.Logger, interval time.Duration) *Refresher {
	return &Refresher{
		gateway:  gateway,
		state:    state,
		log:      log,
		interval: interval,
	}
}

// Start launches the polling loop. Calling Start on a running refresher
// is a no-op; after Stop it may be started again (view remounted).
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	done := make(chan struct{})
	r.done = done

	go r.run(ctx, done)
	r.log.LogSync("START", fmt.Sprintf("polling every %s", r.interval))
}

// Stop cancels the loop and waits for any in-flight fetch to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.log.LogSync("STOP", "polling suspended")
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce performs a single convergence pass. It is exported so a
// view can force an immediate refresh on remount. Returns false when the
// pass was skipped (no session, overlapping call) or the snapshot was
// discarded as stale.
func (r *Refresher) RefreshOnce(ctx context.Context) bool {
	if !r.busy.CompareAndSwap(false, true) {
		r.log.LogSync("SKIP", "previous refresh still in flight")
		return false
	}
	defer r.busy.Store(false)

	orderID, bound := r.state.OrderID()
	if !bound {
		return false
	}

	// Snapshots fetched from here on are only valid against this
	// generation; a mutation landing mid-fetch invalidates them.
	gen := r.state.Generation()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		order, err := r.gateway.GetOrderWithItems(gctx, orderID)
		if err != nil {
			return err
		}
		if !r.state.ApplyRefresh(order, gen) {
			r.log.LogSync("STALE", fmt.Sprintf("discarded snapshot of order %d (local mutation won)", orderID))
			return errStale
		}
		return nil
	})

	if table := r.state.Table(); table != nil {
		tableID := table.ID
		g.Go(func() error {
			fresh, err := r.gateway.GetTable(gctx, tableID)
			if err != nil {
				return err
			}
			r.state.RefreshTable(fresh)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if err == errStale {
			return false
		}
		if api.IsNotFound(err) {
			// The order vanished server-side; this session is over.
			r.log.Warn("SYNC", fmt.Sprintf("order %d no longer exists, clearing session", orderID))
			r.state.Clear()
			return false
		}
		r.log.Warn("SYNC", fmt.Sprintf("refresh of order %d failed: %v", orderID, err))
		return false
	}

	r.log.LogSync("MERGE", fmt.Sprintf("order %d converged", orderID))
	return true
}

var errStale = fmt.Errorf("stale refresh discarded")
