// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// MetricsRecorder receives operational measurements from the store and the API client.
type MetricsRecorder interface {
	// ObserveRemoteCall records one finance API call.
	ObserveRemoteCall(operation string, status int, duration time.Duration)

	// RecordLoad records the outcome of a store load ("succeeded", "failed", "stale").
	RecordLoad(resource, outcome string)

	// RecordMutation records the outcome of a store mutation.
	RecordMutation(operation string, succeeded bool)

	// SetSnapshotVersion publishes the current store snapshot version.
	SetSnapshotVersion(version uint64)
}

// NoopMetrics discards every measurement.
type NoopMetrics struct{}

func (NoopMetrics) ObserveRemoteCall(string, int, time.Duration) {}
func (NoopMetrics) RecordLoad(string, string)                    {}
func (NoopMetrics) RecordMutation(string, bool)                  {}
func (NoopMetrics) SetSnapshotVersion(uint64)                    {}
