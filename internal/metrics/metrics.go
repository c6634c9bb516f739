// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncRegistration(status string) // status: "success", "duplicate"
	IncLogin(status string)        // status: "success", "invalid"

	// Chat metrics
	IncChatRoute(route string)

	// News retrieval metrics
	IncNewsFetch(outcome string)
	ObserveNewsFetchDuration(duration time.Duration)
	IncHeadlineCacheHit()
	IncHeadlineCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
