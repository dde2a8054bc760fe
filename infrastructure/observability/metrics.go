package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gambler/arcade/config"
	"gambler/arcade/domain/entities"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// MetricsProvider manages OpenTelemetry metrics for the arcade service. It
// observes game sessions, interaction dispatch, balance changes and event
// publishing. A nil provider records nothing.
type MetricsProvider struct {
	config        *config.Config
	reader        sdkmetric.Reader
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	// Metric instruments
	sessionsStartedCounter       metric.Int64Counter
	sessionsSettledCounter       metric.Int64Counter
	sessionsLiveGauge            metric.Int64UpDownCounter
	sessionStakeCounter          metric.Int64Counter
	sessionPayoutCounter         metric.Int64Counter
	interactionsCounter          metric.Int64Counter
	natsMessagesPublishedCounter metric.Int64Counter
	balanceTransactionsCounter   metric.Int64Counter
	balanceVolumeCounter         metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// NewMetricsProviderWithReader creates a provider that exports through the
// given reader instead of the configured exporter
func NewMetricsProviderWithReader(cfg *config.Config, reader sdkmetric.Reader) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
		reader: reader,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Info("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	reader := mp.reader
	if reader == nil {
		var exporter sdkmetric.Exporter
		switch mp.config.OTelExporterType {
		case "console":
			exporter, err = stdoutmetric.New()
			if err != nil {
				return fmt.Errorf("failed to create console exporter: %w", err)
			}
			log.Info("Using console metric exporter")

		case "otlp":
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			exporter, err = otlpmetricgrpc.New(ctx,
				otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
				otlpmetricgrpc.WithInsecure(),
			)
			if err != nil {
				return fmt.Errorf("failed to create OTLP exporter: %w", err)
			}
			log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

		case "none":
			log.Info("Metrics export disabled (exporter_type='none')")
			mp.initialized = true
			return nil

		default:
			return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
		}

		reader = sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
		)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter("arcade")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.sessionsStartedCounter, err = mp.meter.Int64Counter(
		SessionsStartedTotal,
		metric.WithDescription("Total number of game sessions started"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create sessions started counter: %w", err)
	}

	mp.sessionsSettledCounter, err = mp.meter.Int64Counter(
		SessionsSettledTotal,
		metric.WithDescription("Total number of game sessions settled"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create sessions settled counter: %w", err)
	}

	// UpDownCounter for gauge-like behavior
	mp.sessionsLiveGauge, err = mp.meter.Int64UpDownCounter(
		SessionsLive,
		metric.WithDescription("Current number of unsettled game sessions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create live sessions gauge: %w", err)
	}

	mp.sessionStakeCounter, err = mp.meter.Int64Counter(
		SessionStakeTotal,
		metric.WithDescription("Total bits staked on settled sessions"),
		metric.WithUnit("{bit}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create stake counter: %w", err)
	}

	mp.sessionPayoutCounter, err = mp.meter.Int64Counter(
		SessionPayoutTotal,
		metric.WithDescription("Total bits paid out on settled sessions"),
		metric.WithUnit("{bit}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create payout counter: %w", err)
	}

	mp.interactionsCounter, err = mp.meter.Int64Counter(
		InteractionsDispatchedTotal,
		metric.WithDescription("Total number of component interactions dispatched"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create interactions counter: %w", err)
	}

	mp.natsMessagesPublishedCounter, err = mp.meter.Int64Counter(
		NATSMessagesPublishedTotal,
		metric.WithDescription("Total number of NATS messages published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create NATS messages published counter: %w", err)
	}

	mp.balanceTransactionsCounter, err = mp.meter.Int64Counter(
		BalanceTransactionsTotal,
		metric.WithDescription("Total number of balance transactions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create balance transactions counter: %w", err)
	}

	mp.balanceVolumeCounter, err = mp.meter.Int64Counter(
		BalanceVolumeTotal,
		metric.WithDescription("Total bits moved by balance transactions"),
		metric.WithUnit("{bit}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create balance volume counter: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp == nil {
		return nil
	}
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// SessionStarted records a new game session
func (mp *MetricsProvider) SessionStarted(game string) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(attribute.String(LabelGame, game))
	mp.sessionsStartedCounter.Add(context.Background(), 1, attrs)
	mp.sessionsLiveGauge.Add(context.Background(), 1, attrs)
}

// SessionSettled records a settled game session with its stake and payout
func (mp *MetricsProvider) SessionSettled(game string, outcome string, stake, payout int64) {
	if !mp.isEnabled() {
		return
	}

	ctx := context.Background()
	gameAttr := attribute.String(LabelGame, game)
	mp.sessionsSettledCounter.Add(ctx, 1, metric.WithAttributes(gameAttr, attribute.String(LabelOutcome, outcome)))
	mp.sessionsLiveGauge.Add(ctx, -1, metric.WithAttributes(gameAttr))
	mp.sessionStakeCounter.Add(ctx, stake, metric.WithAttributes(gameAttr))
	mp.sessionPayoutCounter.Add(ctx, payout, metric.WithAttributes(gameAttr))
}

// RecordInteraction records the outcome of a component interaction dispatch
func (mp *MetricsProvider) RecordInteraction(outcome string) {
	if !mp.isEnabled() {
		return
	}

	mp.interactionsCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelOutcome, outcome),
		),
	)
}

// EventPublished records a NATS message being published
func (mp *MetricsProvider) EventPublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// BalanceTransaction records a committed balance change
func (mp *MetricsProvider) BalanceTransaction(txType entities.TransactionType, amount int64) {
	if !mp.isEnabled() {
		return
	}

	direction := DirectionCredit
	if amount < 0 {
		direction = DirectionDebit
		amount = -amount
	}

	ctx := context.Background()
	mp.balanceTransactionsCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelType, string(txType)),
		),
	)
	mp.balanceVolumeCounter.Add(ctx, amount,
		metric.WithAttributes(
			attribute.String(LabelType, string(txType)),
			attribute.String(LabelDirection, direction),
		),
	)
}

// isEnabled checks if metrics are enabled and instruments exist
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
