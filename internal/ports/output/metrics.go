package output

// Metrics records domain-level counters. A nil Metrics is never passed to
// services; use NopMetrics instead.
type Metrics interface {
	ParticipationChanged(op string, err error)
	FeedLoaded(count int, err error)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ParticipationChanged(string, error) {}
func (NopMetrics) FeedLoaded(int, error)              {}
