package aggregate

import (
	"strings"
	"time"

	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Hooks captures aggregate-level observability events.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	ChildSkipped(name string, skip *errs.ReconciliationSkipError)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration)       {}
func (noopHooks) ChildSkipped(string, *errs.ReconciliationSkipError) {}

// NoopHooks discards every event.
func NoopHooks() Hooks { return noopHooks{} }

type newRelicHooks struct {
	app *newrelic.Application
}

// NewNewRelicHooks records aggregate events as New Relic custom events. A nil
// app yields hooks that do nothing.
func NewNewRelicHooks(app *newrelic.Application) Hooks {
	if app == nil {
		return noopHooks{}
	}
	return &newRelicHooks{app: app}
}

func (h *newRelicHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.app.RecordCustomEvent("AggregateOperation", map[string]any{
		"operation":   strings.TrimSpace(name),
		"status":      strings.TrimSpace(status),
		"duration_ms": dur.Milliseconds(),
	})
}

func (h *newRelicHooks) ChildSkipped(name string, skip *errs.ReconciliationSkipError) {
	if skip == nil {
		return
	}
	h.app.RecordCustomEvent("ReconciliationSkip", map[string]any{
		"operation":  strings.TrimSpace(name),
		"collection": skip.Collection,
		"root_id":    skip.RootID,
		"key":        skip.Key,
		"reason":     string(skip.Reason),
	})
}
