package xforget

import (
	"github.com/omeyang/xforget/pkg/observability/xlog"
	"github.com/omeyang/xforget/pkg/observability/xmetrics"
)

// MaxCapacity 缓存容量上限。
const MaxCapacity = 1 << 24 // 16,777,216

// Config 定义缓存配置。
type Config struct {
	// Capacity 缓存最大条目数。
	// 必须大于 0 且不超过 MaxCapacity。
	Capacity int
}

// Validate 校验配置。
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if c.Capacity > MaxCapacity {
		return ErrCapacityExceedsMax
	}
	return nil
}

// Option 定义缓存可选配置函数类型。
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	onEvicted func(key K, value V)
	logger    xlog.Logger
	recorder  xmetrics.Recorder
}

// WithOnEvicted 设置条目被淘汰后的回调函数。
//
// 回调在 Add 释放锁之后、Add 返回之前同步执行，因此可以在回调中调用 Cache 的方法。
// 原地替换（对已存在的键调用 Add）不算淘汰，不会触发回调。
func WithOnEvicted[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvicted = fn
	}
}

// WithLogger 设置日志器，每次淘汰输出一条 Debug 日志。
// nil 被忽略。
func WithLogger[K comparable, V any](logger xlog.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder 设置指标记录器。
// nil 被忽略。
func WithRecorder[K comparable, V any](recorder xmetrics.Recorder) Option[K, V] {
	return func(o *options[K, V]) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}
