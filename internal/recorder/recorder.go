package recorder

// EventRecord is one notable game event, such as a finished model or an
// unlocked achievement.
type EventRecord struct {
	ID        int64   `db:"id"`
	Timestamp int64   `db:"timestamp"`
	Tick      int64   `db:"tick"`
	Kind      string  `db:"kind"`
	Subject   string  `db:"subject"`
	Amount    float64 `db:"amount"`
}

// StatsSnapshot is a periodic sample of the economy for charting progress.
type StatsSnapshot struct {
	ID                 int64   `db:"id"`
	Timestamp          int64   `db:"timestamp"`
	TimeElapsed        int64   `db:"time_elapsed"`
	Money              float64 `db:"money"`
	ComputePower       float64 `db:"compute_power"`
	DataQuality        float64 `db:"data_quality"`
	Reputation         float64 `db:"reputation"`
	TotalEarnings      float64 `db:"total_earnings"`
	TotalSpent         float64 `db:"total_spent"`
	HighestEarningRate float64 `db:"highest_earning_rate"`
	TotalModels        int     `db:"total_models"`
	ModelsCompleted    int     `db:"models_completed"`
	UpgradesPurchased  int     `db:"upgrades_purchased"`
}

// Recorder persists game history for later analysis.
type Recorder interface {
	RecordEvent(evt *EventRecord) error
	RecordStats(snap *StatsSnapshot) error
	RecentEvents(limit int) ([]EventRecord, error)
	Close() error
}
