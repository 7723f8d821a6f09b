// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Kind identifies the entity kind a counter belongs to.
type Kind string

const (
	KindUser    Kind = "user"
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
	KindGoal    Kind = "goal"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Record mutation counters, per entity kind.
	IncCreated(kind Kind)
	AddCreated(kind Kind, n int)
	IncUpdated(kind Kind)
	IncDeleted(kind Kind)
	AddDeleted(kind Kind, n int)

	// User lookup cache metrics.
	IncUserCacheHit()
	IncUserCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
