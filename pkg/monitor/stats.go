package monitor

import (
	"sync/atomic"
)

type InferenceStats struct {
	RunCount         uint64
	ObservationCount uint64
	CacheHitCount    uint64
}

func NewInferenceStats() *InferenceStats {
	return &InferenceStats{}
}

func (is *InferenceStats) RecordRun() {
	atomic.AddUint64(&is.RunCount, 1)
}

func (is *InferenceStats) RecordObservations(n int) {
	atomic.AddUint64(&is.ObservationCount, uint64(n))
}

func (is *InferenceStats) RecordCacheHit() {
	atomic.AddUint64(&is.CacheHitCount, 1)
}

func (is *InferenceStats) GetObservationsPerRun() float64 {
	runs := atomic.LoadUint64(&is.RunCount)
	obs := atomic.LoadUint64(&is.ObservationCount)

	if runs == 0 {
		return 0.0
	}
	return float64(obs) / float64(runs)
}
