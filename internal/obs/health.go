package obs

import "context"

// HealthStatus is the overall health snapshot of one open cursor.
type HealthStatus struct {
	Status string                  `json:"status"`
	Checks map[string]*CheckResult `json:"checks"`
}

// CheckResult is the outcome of a single named health check.
type CheckResult struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
}

// Source is implemented by anything a HealthChecker can introspect —
// in practice the diskann.File wrapped by a cursor. It is narrow by
// design (spec.md §1: only the contracts a collaborator must honor
// are specified) so obs never imports the top-level package and can't
// form an import cycle with it.
type Source interface {
	// EntryKnown reports whether the current entry offset is nonzero.
	EntryKnown() bool
	// NonEmpty reports whether the file holds more than just the
	// header block.
	NonEmpty() bool
}

// HealthChecker reports whether an index file's entry point is known,
// surfacing the §5 "entry unknown, rebuild from last-written block"
// recovery concern as an observable health signal rather than only a
// behavior triggered silently on re-open.
type HealthChecker struct {
	source Source
}

// NewHealthChecker creates a health checker over source.
func NewHealthChecker(source Source) *HealthChecker {
	return &HealthChecker{source: source}
}

// Check performs the health check.
func (hc *HealthChecker) Check(ctx context.Context) (*HealthStatus, error) {
	entryCheck := &CheckResult{Healthy: true, Message: "entry point known"}
	if hc.source.NonEmpty() && !hc.source.EntryKnown() {
		entryCheck = &CheckResult{Healthy: false, Message: "entry point unknown on non-empty file"}
	}

	status := "healthy"
	if !entryCheck.Healthy {
		status = "degraded"
	}

	return &HealthStatus{
		Status: status,
		Checks: map[string]*CheckResult{
			"entry_point": entryCheck,
		},
	}, nil
}
