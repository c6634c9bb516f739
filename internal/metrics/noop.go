package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration(status string) {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncChatRoute is a no-op.
func (n *NoopRecorder) IncChatRoute(route string) {}

// IncNewsFetch is a no-op.
func (n *NoopRecorder) IncNewsFetch(outcome string) {}

// ObserveNewsFetchDuration is a no-op.
func (n *NoopRecorder) ObserveNewsFetchDuration(duration time.Duration) {}

// IncHeadlineCacheHit is a no-op.
func (n *NoopRecorder) IncHeadlineCacheHit() {}

// IncHeadlineCacheMiss is a no-op.
func (n *NoopRecorder) IncHeadlineCacheMiss() {}
