package xlog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// globalLogger 全局 Logger 实例，nil 表示尚未初始化
var globalLogger atomic.Pointer[LoggerWithLevel]

// Default 返回全局默认 Logger
//
// 首次调用时创建默认 Logger（stderr，Info 级别，text 格式）。
// 并发初始化时只有一个实例会被保存，其余被丢弃。
func Default() LoggerWithLevel {
	if l := globalLogger.Load(); l != nil {
		return *l
	}
	// 默认参数不会触发配置错误
	logger, _, _ := New().Build()
	globalLogger.CompareAndSwap(nil, &logger)
	return *globalLogger.Load()
}

// SetDefault 替换全局默认 Logger，nil 被忽略。
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	globalLogger.Store(&l)
}

// ResetDefault 重置全局 Logger 为未初始化状态（仅用于测试）
func ResetDefault() {
	globalLogger.Store(nil)
}

// Warn 使用全局 Logger 记录 Warn 级别日志
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Warn(ctx, msg, attrs...)
}
