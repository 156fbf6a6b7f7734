package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvent(_ *EventRecord) error          { return nil }
func (n *NoopRecorder) RecordStats(_ *StatsSnapshot) error        { return nil }
func (n *NoopRecorder) RecentEvents(_ int) ([]EventRecord, error) { return nil, nil }
func (n *NoopRecorder) Close() error                              { return nil }
