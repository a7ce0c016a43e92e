package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SelectionStore persists the active source key so that several processes
// share one selection.
type SelectionStore interface {
	// GetSelected returns the stored key, or "" when nothing was stored yet.
	GetSelected(ctx context.Context) (string, error)
	// SetSelected stores key.
	SetSelected(ctx context.Context, key string) error
}

// Option configures a Selector.
type Option func(*Selector)

// WithSelectionStore shares the active key through store.
func WithSelectionStore(store SelectionStore) Option {
	return func(s *Selector) {
		s.store = store
	}
}

// Selector holds the registered rate sources and the currently active one.
// It is safe for concurrent use.
type Selector struct {
	mu      sync.RWMutex
	sources map[string]RateSource
	order   []string
	active  string
	// unsynced is set while the store has not acknowledged active.
	unsynced bool
	store    SelectionStore
	logger   *slog.Logger
}

// NewSelector returns a Selector whose active key is defaultKey.
// The default source is expected to be registered before the first lookup.
func NewSelector(defaultKey string, logger *slog.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Selector{
		sources: make(map[string]RateSource),
		active:  defaultKey,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds source under key, replacing any source already registered there.
func (s *Selector) Register(key string, source RateSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sources[key]; !exists {
		s.order = append(s.order, key)
	}
	s.sources[key] = source
}

// Keys returns the registered keys in registration order.
func (s *Selector) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Select makes key the active source. Unknown keys fail with
// domain.ErrUnknownAdapter and leave the active source unchanged.
func (s *Selector) Select(ctx context.Context, key string) error {
	s.mu.Lock()
	if _, ok := s.sources[key]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrUnknownAdapter, key)
	}
	s.active = key
	s.unsynced = false
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SetSelected(ctx, key); err != nil {
			s.logger.Warn("Failed to persist rate adapter selection, will retry", "key", key, "error", err)
			s.mu.Lock()
			if s.active == key {
				s.unsynced = true
			}
			s.mu.Unlock()
		}
	}
	s.logger.Info("Rate adapter selected", "key", key)
	return nil
}

// Active returns the key and display name of the active source.
func (s *Selector) Active(ctx context.Context) (string, string) {
	key := s.resolve(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if src, ok := s.sources[key]; ok {
		return key, src.Name()
	}
	return key, ""
}

// GetRate asks the active source for the from→to rate.
func (s *Selector) GetRate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error) {
	key := s.resolve(ctx)
	s.mu.RLock()
	src, ok := s.sources[key]
	s.mu.RUnlock()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUnknownAdapter, key)
	}
	return src.GetRate(ctx, from, to)
}

// Name implements RateSource with the active source's name.
func (s *Selector) Name() string {
	_, name := s.Active(context.Background())
	return name
}

// ListAllRates queries every registered source concurrently, whichever is
// active, and returns each answer keyed by source name. A failing source is
// reported in its own entry and never hides the others.
func (s *Selector) ListAllRates(ctx context.Context, from, to currency.Code) map[string]RateResult {
	s.mu.RLock()
	sources := make([]RateSource, 0, len(s.order))
	for _, key := range s.order {
		sources = append(sources, s.sources[key])
	}
	s.mu.RUnlock()

	var (
		mu  sync.Mutex
		out = make(map[string]RateResult, len(sources))
		g   errgroup.Group
	)
	for _, src := range sources {
		g.Go(func() error {
			rate, err := src.GetRate(ctx, from, to)
			if err != nil {
				s.logger.Warn("Rate source failed", "source", src.Name(), "error", err)
			}
			mu.Lock()
			out[src.Name()] = RateResult{Rate: rate, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// resolve returns the shared key when the store has a registered one,
// and the local key otherwise. A local selection the store never
// acknowledged wins over the stored key and is written back first.
func (s *Selector) resolve(ctx context.Context) string {
	s.mu.RLock()
	local, unsynced := s.active, s.unsynced
	s.mu.RUnlock()
	if s.store == nil {
		return local
	}
	if unsynced {
		if err := s.store.SetSelected(ctx, local); err != nil {
			s.logger.Debug("Selection store still unavailable", "key", local, "error", err)
			return local
		}
		s.mu.Lock()
		if s.active == local {
			s.unsynced = false
		}
		s.mu.Unlock()
		s.logger.Info("Rate adapter selection persisted", "key", local)
		return local
	}

	key, err := s.store.GetSelected(ctx)
	if err != nil {
		s.logger.Warn("Selection store unavailable, using local rate adapter", "key", local, "error", err)
		return local
	}
	if key == "" || key == local {
		return local
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sources[key]; !ok {
		s.logger.Warn("Stored rate adapter is not registered", "key", key)
		return s.active
	}
	s.active = key
	return key
}

var _ RateSource = (*Selector)(nil)
