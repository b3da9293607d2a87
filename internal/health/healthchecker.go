// Package health aggregates component probes into a single service status.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// HealthPinger is implemented by backends that offer a cheaper probe than a
// full read. HealthPing returns nil when the backend is reachable.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// Status is a point-in-time view of service health.
type Status struct {
	Healthy    bool
	Components map[string]bool
	// Since is when Healthy last changed.
	Since time.Time
}

// ServiceHealthChecker caches the combined state of its dependencies. It
// reports unhealthy until the first evaluation.
type ServiceHealthChecker struct {
	deps []HealthChecker
	log  zerolog.Logger
	now  func() time.Time

	mu     sync.RWMutex
	status Status
	seen   bool
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log, now: time.Now}
}

// IsHealthy returns cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status.Healthy
}

// Components reports the cached state of every dependency by name.
func (h *ServiceHealthChecker) Components() map[string]bool {
	return h.Snapshot().Components
}

// Snapshot returns a copy of the cached status.
func (h *ServiceHealthChecker) Snapshot() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := h.status
	out.Components = make(map[string]bool, len(h.status.Components))
	for k, v := range h.status.Components {
		out.Components[k] = v
	}
	return out
}

// Evaluate reads every dependency once, updates the cache and logs transitions.
func (h *ServiceHealthChecker) Evaluate() Status {
	components := make(map[string]bool, len(h.deps))
	var down []string
	for _, c := range h.deps {
		ok := c.IsHealthy()
		components[c.Name()] = ok
		if !ok {
			down = append(down, c.Name())
		}
	}
	sort.Strings(down)
	healthy := len(down) == 0

	h.mu.Lock()
	changed := !h.seen || h.status.Healthy != healthy
	h.seen = true
	h.status.Healthy = healthy
	h.status.Components = components
	if changed {
		h.status.Since = h.now()
	}
	h.mu.Unlock()

	if changed {
		if healthy {
			h.log.Info().Msg("service health: UP")
		} else {
			h.log.Error().Strs("down", down).Msg("service health: DOWN")
		}
	}
	return h.Snapshot()
}

// Start evaluates immediately and then every interval until ctx is done.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Evaluate()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Evaluate()
		}
	}
}
