package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jonathan/career-recommender/internal/catalog"
	"go.uber.org/zap"
)

// LoadFunc produces a fresh catalog store, for example by re-reading the
// configured source.
type LoadFunc func(ctx context.Context) (*catalog.Store, error)

// Holder publishes the current Snapshot. Readers call Current once per
// request and use that snapshot throughout, so a concurrent Reload never
// mixes old and new data within one request.
type Holder struct {
	current atomic.Pointer[Snapshot]
	load    LoadFunc
	opts    Options
	logger  *zap.Logger
	mu      sync.Mutex // serializes reloads
}

// NewHolder loads and builds the initial snapshot. It fails fast: no Holder
// is returned unless the first snapshot is complete.
func NewHolder(ctx context.Context, load LoadFunc, opts Options) (*Holder, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Holder{load: load, opts: opts, logger: logger}
	snap, err := h.build(ctx)
	if err != nil {
		return nil, err
	}
	h.current.Store(snap)
	return h, nil
}

// NewStaticHolder wraps an already built snapshot. Reload rebuilds from the
// same store.
func NewStaticHolder(snap *Snapshot, opts Options) *Holder {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := snap.store
	h := &Holder{
		load:   func(context.Context) (*catalog.Store, error) { return store, nil },
		opts:   opts,
		logger: logger,
	}
	h.current.Store(snap)
	return h
}

// Current returns the snapshot in service.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Reload builds a new snapshot and swaps it in. On failure the previous
// snapshot stays in service and the error is returned.
func (h *Holder) Reload(ctx context.Context) (*Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap, err := h.build(ctx)
	if err != nil {
		h.logger.Error("reload failed, keeping current snapshot", zap.Error(err))
		return nil, err
	}

	prev := h.current.Swap(snap)
	fields := []zap.Field{zap.String("snapshot_id", snap.ID().String())}
	if prev != nil {
		fields = append(fields, zap.String("previous_snapshot_id", prev.ID().String()))
	}
	h.logger.Info("snapshot swapped", fields...)
	return snap, nil
}

func (h *Holder) build(ctx context.Context) (*Snapshot, error) {
	store, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	opts := h.opts
	opts.Logger = h.logger
	return Build(ctx, store, opts)
}
