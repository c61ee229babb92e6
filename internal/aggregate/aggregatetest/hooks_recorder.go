package aggregatetest

import (
	"sync"
	"time"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/errs"
)

// HooksRecorder captures aggregate hook signals in tests.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []OperationEvent
	Skips      []*errs.ReconciliationSkipError
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregate.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, OperationEvent{
		Name:     name,
		Status:   status,
		Duration: dur,
	})
}

func (h *HooksRecorder) ChildSkipped(_ string, skip *errs.ReconciliationSkipError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Skips = append(h.Skips, skip)
}

// LastStatus returns the status of the most recent operation.
func (h *HooksRecorder) LastStatus() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Operations) == 0 {
		return ""
	}
	return h.Operations[len(h.Operations)-1].Status
}
