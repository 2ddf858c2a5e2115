// Package poller drives payment status reconciliation for in-flight
// checkouts. One polling session exists per order at a time; starting a new
// session supersedes and cancels the previous one, and sessions are always
// cancellable through an explicit handle rather than relying on caller
// teardown.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/workhive/paymentd/internal/domain/model"
)

// StatusFetcher is the single gateway operation the poller depends on.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, orderID string) (*model.TransactionState, error)
}

// Options bound one polling session.
type Options struct {
	MaxAttempts int
	Interval    time.Duration
}

// Poller owns the per-order polling sessions.
type Poller struct {
	fetcher StatusFetcher
	logger  *slog.Logger

	mu     sync.Mutex
	active map[string]*session
}

type session struct {
	cancel context.CancelFunc
	nudge  chan struct{}
	done   chan struct{}
}

// New constructs a poller on top of the given status fetcher.
func New(fetcher StatusFetcher, logger *slog.Logger) *Poller {
	return &Poller{
		fetcher: fetcher,
		logger:  logger,
		active:  make(map[string]*session),
	}
}

// CheckStatus performs one status check without starting a session. This is
// the manual "check status" path offered after a poll times out.
func (p *Poller) CheckStatus(ctx context.Context, orderID string) (*model.TransactionState, error) {
	return p.fetcher.FetchStatus(ctx, orderID)
}

// Start launches a polling session for the order. An already running session
// for the same order is cancelled first, so at most one session per order is
// ever active. onResult receives exactly one terminal result per session.
func (p *Poller) Start(ctx context.Context, orderID string, opts Options, onUpdate func(model.TransactionStatus), onResult func(model.PollResult)) {
	p.mu.Lock()
	if prev, ok := p.active[orderID]; ok {
		prev.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s := &session{
		cancel: cancel,
		nudge:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	p.active[orderID] = s
	p.mu.Unlock()

	go func() {
		defer close(s.done)
		defer cancel()

		result := p.poll(runCtx, orderID, opts, s.nudge, onUpdate)

		p.mu.Lock()
		if p.active[orderID] == s {
			delete(p.active, orderID)
		}
		p.mu.Unlock()

		if onResult != nil {
			onResult(result)
		}
	}()
}

// Nudge asks an active session to run its next attempt immediately instead
// of waiting out the interval. Used when a payment page URL hints success.
// Returns false when no session is active for the order.
func (p *Poller) Nudge(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.active[orderID]
	if !ok {
		return false
	}
	select {
	case s.nudge <- struct{}{}:
	default:
	}
	return true
}

// Cancel stops the active session for the order, waiting for it to finish.
// Returns false when no session was active.
func (p *Poller) Cancel(orderID string) bool {
	p.mu.Lock()
	s, ok := p.active[orderID]
	p.mu.Unlock()
	if !ok {
		return false
	}
	s.cancel()
	<-s.done
	return true
}

// Active reports whether a session is currently running for the order.
func (p *Poller) Active(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[orderID]
	return ok
}

// PollUntilTerminal runs strictly sequential status checks until the gateway
// reports a terminal status or maxAttempts is exhausted. A failed check never
// aborts the loop; it just consumes the attempt. The call blocks the caller;
// Start is the asynchronous variant.
func (p *Poller) PollUntilTerminal(ctx context.Context, orderID string, onUpdate func(model.TransactionStatus), maxAttempts int, interval time.Duration) model.PollResult {
	return p.poll(ctx, orderID, Options{MaxAttempts: maxAttempts, Interval: interval}, nil, onUpdate)
}

func (p *Poller) poll(ctx context.Context, orderID string, opts Options, nudge <-chan struct{}, onUpdate func(model.TransactionStatus)) model.PollResult {
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	responded := false
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return model.PollResult{Status: model.PollOutcomeCancelled}
		}

		state, err := p.fetcher.FetchStatus(ctx, orderID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return model.PollResult{Status: model.PollOutcomeCancelled}
			}
			p.logger.Warn("status check failed",
				slog.String("order", orderID),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
		default:
			responded = true
			if onUpdate != nil {
				onUpdate(state.Status)
			}
			if state.Status.TerminalSuccess() {
				return model.PollResult{Completed: true, Success: true, Status: model.PollOutcomeSuccess, Transaction: state}
			}
			if state.Status.TerminalFailure() {
				return model.PollResult{Completed: true, Status: model.PollOutcomeFailure, Transaction: state}
			}
		}

		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.PollResult{Status: model.PollOutcomeCancelled}
		case <-nudge:
			timer.Stop()
		case <-timer.C:
		}
	}

	if !responded {
		return model.PollResult{Status: model.PollOutcomeError}
	}
	return model.PollResult{Status: model.PollOutcomeTimeout}
}
