// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory for tests.
type Recorder interface {
	// HTTP metrics. route is the matched route pattern, not the raw path.
	ObserveRequest(route, method string, status int, duration time.Duration)

	// User metrics
	IncUserCreated()
	IncUserRejected(reason string) // reason: "missing_fields", "malformed_body", "body_too_large"
}
