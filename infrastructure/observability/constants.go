package observability

// Metric name prefixes
const (
	MetricPrefix = "arcade"
)

// Metric names
const (
	// Session metrics
	SessionsStartedTotal = MetricPrefix + ".sessions.started_total"
	SessionsSettledTotal = MetricPrefix + ".sessions.settled_total"
	SessionsLive         = MetricPrefix + ".sessions.live"
	SessionStakeTotal    = MetricPrefix + ".sessions.stake_total"
	SessionPayoutTotal   = MetricPrefix + ".sessions.payout_total"

	// Interaction metrics
	InteractionsDispatchedTotal = MetricPrefix + ".interactions.dispatched_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Balance metrics
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"
	BalanceVolumeTotal       = MetricPrefix + ".balance.volume_total"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelGame      = "game"
	LabelOutcome   = "outcome"
	LabelDirection = "direction"
)

// Balance directions
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)
