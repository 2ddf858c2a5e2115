// Package urlhint classifies payment page navigation URLs reported by
// clients. A match is only a hint to check the gateway sooner; it never
// decides the payment outcome by itself.
package urlhint

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// Hint is the classification of a reported navigation URL.
type Hint int

const (
	HintNone Hint = iota
	HintSuccess
	HintFailure
)

func (h Hint) String() string {
	switch h {
	case HintSuccess:
		return "success"
	case HintFailure:
		return "failure"
	default:
		return "none"
	}
}

var (
	successPaths = []string{"/finish", "/success"}
	failurePaths = []string{"/error", "/fail"}

	successStatuses = map[string]struct{}{"capture": {}, "settlement": {}}
	failureStatuses = map[string]struct{}{"deny": {}, "cancel": {}, "expire": {}}
)

// Detect classifies a raw navigation URL. Path segments are compared with
// query and fragment stripped; the transaction_status query parameter is
// inspected separately. Matching is substring based and case-sensitive,
// mirroring the patterns the hosted payment pages are known to emit.
func Detect(raw string) Hint {
	parsed, err := url.Parse(raw)
	if err != nil {
		return HintNone
	}

	if status := parsed.Query().Get("transaction_status"); status != "" {
		if _, ok := successStatuses[status]; ok {
			return HintSuccess
		}
		if _, ok := failureStatuses[status]; ok {
			return HintFailure
		}
	}

	for _, p := range failurePaths {
		if strings.Contains(parsed.Path, p) {
			return HintFailure
		}
	}
	for _, p := range successPaths {
		if strings.Contains(parsed.Path, p) {
			return HintSuccess
		}
	}

	return HintNone
}

// Debouncer coalesces near-duplicate navigation events. Hosted payment pages
// fire several callbacks for one logical transition (hash-only and query-only
// changes), so repeated events for the same order and canonical URL within
// the window are suppressed.
type Debouncer struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

// NewDebouncer creates a debouncer with the given coalescing window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		now:    time.Now,
		seen:   make(map[string]time.Time),
	}
}

// Observe reports whether the event should be processed. The canonical form
// (query and fragment stripped) keys the window, so `/finish#a` followed by
// `/finish#b` counts as one event.
func (d *Debouncer) Observe(orderID, raw string) bool {
	key := orderID + "|" + canonical(raw)

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[key] = now

	// Drop stale entries so long sessions don't accumulate keys.
	for k, ts := range d.seen {
		if now.Sub(ts) >= d.window {
			delete(d.seen, k)
		}
	}
	return true
}

// Forget clears tracked events for an order, e.g. when its checkout ends.
func (d *Debouncer) Forget(orderID string) {
	prefix := orderID + "|"

	d.mu.Lock()
	defer d.mu.Unlock()
	for k := range d.seen {
		if strings.HasPrefix(k, prefix) {
			delete(d.seen, k)
		}
	}
}

func canonical(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}
