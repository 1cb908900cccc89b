package xmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xforget/xmetrics"
	defaultCacheName           = "default"

	// MetricLookups 查找次数指标名。
	MetricLookups = "xforget.cache.lookups"
	// MetricInserts 写入次数指标名。
	MetricInserts = "xforget.cache.inserts"
	// MetricEvictions 淘汰次数指标名。
	MetricEvictions = "xforget.cache.evictions"
	// MetricSize 当前条目数指标名。
	MetricSize = "xforget.cache.size"
)

type otelConfig struct {
	instrumentationName string
	cacheName           string
	meterProvider       metric.MeterProvider
}

// Option 定义 OTel Recorder 的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称，空值被忽略。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithCacheName 设置 cache 属性值，空值被忽略。
func WithCacheName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.cacheName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，nil 时使用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelRecorder 创建基于 OpenTelemetry 的 Recorder。
func NewOTelRecorder(opts ...Option) (Recorder, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		cacheName:           defaultCacheName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	lookups, err := meter.Int64Counter(MetricLookups,
		metric.WithDescription("cache lookups"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricLookups, err)
	}
	inserts, err := meter.Int64Counter(MetricInserts,
		metric.WithDescription("cache inserts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricInserts, err)
	}
	evictions, err := meter.Int64Counter(MetricEvictions,
		metric.WithDescription("cache evictions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricEvictions, err)
	}
	size, err := meter.Int64UpDownCounter(MetricSize,
		metric.WithDescription("live cache entries"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, MetricSize, err)
	}

	cache := attribute.String("cache", cfg.cacheName)
	return &otelRecorder{
		lookups:   lookups,
		inserts:   inserts,
		evictions: evictions,
		size:      size,
		// 属性集在创建时预先计算，热路径不再分配
		hitAttrs:     metric.WithAttributeSet(attribute.NewSet(cache, attribute.String("result", "hit"))),
		missAttrs:    metric.WithAttributeSet(attribute.NewSet(cache, attribute.String("result", "miss"))),
		newAttrs:     metric.WithAttributeSet(attribute.NewSet(cache, attribute.String("kind", "new"))),
		replaceAttrs: metric.WithAttributeSet(attribute.NewSet(cache, attribute.String("kind", "replace"))),
		cacheAttrs:   metric.WithAttributeSet(attribute.NewSet(cache)),
	}, nil
}

type otelRecorder struct {
	lookups   metric.Int64Counter
	inserts   metric.Int64Counter
	evictions metric.Int64Counter
	size      metric.Int64UpDownCounter

	hitAttrs     metric.MeasurementOption
	missAttrs    metric.MeasurementOption
	newAttrs     metric.MeasurementOption
	replaceAttrs metric.MeasurementOption
	cacheAttrs   metric.MeasurementOption
}

// Lookup 记录一次查找。
func (r *otelRecorder) Lookup(hit bool) {
	if hit {
		r.lookups.Add(context.Background(), 1, r.hitAttrs)
		return
	}
	r.lookups.Add(context.Background(), 1, r.missAttrs)
}

// Insert 记录一次写入。
func (r *otelRecorder) Insert(replaced bool) {
	if replaced {
		r.inserts.Add(context.Background(), 1, r.replaceAttrs)
		return
	}
	r.inserts.Add(context.Background(), 1, r.newAttrs)
}

// Evict 记录一次淘汰。
func (r *otelRecorder) Evict() {
	r.evictions.Add(context.Background(), 1, r.cacheAttrs)
}

// Resize 记录条目数变化。
func (r *otelRecorder) Resize(delta int64) {
	if delta == 0 {
		return
	}
	r.size.Add(context.Background(), delta, r.cacheAttrs)
}
