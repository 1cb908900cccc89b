package xmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Totals 是某个缓存的指标累计值。
type Totals struct {
	Hits         int64
	Misses       int64
	Inserts      int64
	Replacements int64
	Evictions    int64
	Size         int64
}

// NewManualProvider 创建使用 ManualReader 的 MeterProvider，
// 适用于命令行工具和测试等需要主动拉取指标的场景。
// attrs 作为 Resource 属性（如 service.name）附加到所有指标上。
// 调用方负责 Shutdown 返回的 provider。
func NewManualProvider(attrs ...attribute.KeyValue) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	opts := []sdkmetric.Option{sdkmetric.WithReader(reader)}
	if len(attrs) > 0 {
		opts = append(opts, sdkmetric.WithResource(resource.NewSchemaless(attrs...)))
	}
	return sdkmetric.NewMeterProvider(opts...), reader
}

// Collect 从 reader 拉取一次数据，返回指定缓存的累计值。
func Collect(ctx context.Context, reader sdkmetric.Reader, cacheName string) (Totals, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Totals{}, fmt.Errorf("xmetrics: collect: %w", err)
	}
	if cacheName == "" {
		cacheName = defaultCacheName
	}

	var t Totals
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, _ := dp.Attributes.Value("cache"); v.AsString() != cacheName {
					continue
				}
				t.add(m.Name, dp.Attributes, dp.Value)
			}
		}
	}
	return t, nil
}

func (t *Totals) add(name string, attrs attribute.Set, value int64) {
	switch name {
	case MetricLookups:
		if v, _ := attrs.Value("result"); v.AsString() == "hit" {
			t.Hits += value
		} else {
			t.Misses += value
		}
	case MetricInserts:
		if v, _ := attrs.Value("kind"); v.AsString() == "replace" {
			t.Replacements += value
		} else {
			t.Inserts += value
		}
	case MetricEvictions:
		t.Evictions += value
	case MetricSize:
		t.Size += value
	}
}
