package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncCreated is a no-op.
func (n *NoopRecorder) IncCreated(kind Kind) {}

// AddCreated is a no-op.
func (n *NoopRecorder) AddCreated(kind Kind, count int) {}

// IncUpdated is a no-op.
func (n *NoopRecorder) IncUpdated(kind Kind) {}

// IncDeleted is a no-op.
func (n *NoopRecorder) IncDeleted(kind Kind) {}

// AddDeleted is a no-op.
func (n *NoopRecorder) AddDeleted(kind Kind, count int) {}

// IncUserCacheHit is a no-op.
func (n *NoopRecorder) IncUserCacheHit() {}

// IncUserCacheMiss is a no-op.
func (n *NoopRecorder) IncUserCacheMiss() {}
