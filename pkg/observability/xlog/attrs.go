package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 Key
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyKey       = "key"
	KeyUsage     = "usage"
	KeySequence  = "sequence"
	KeyCapacity  = "capacity"
	KeyPolicy    = "policy"
	KeyRunID     = "run_id"
)

// Err 创建错误属性；err 为 nil 时返回空属性（会被 handler 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建人类可读的耗时属性（如 "1.5s"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Count 创建计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Component 创建组件名称属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Key 创建缓存键属性，键可以是任意 comparable 类型。
func Key(key any) slog.Attr {
	return slog.Any(KeyKey, key)
}

// Usage 创建使用次数属性
func Usage(n uint64) slog.Attr {
	return slog.Uint64(KeyUsage, n)
}

// Sequence 创建插入序号属性
func Sequence(seq uint64) slog.Attr {
	return slog.Uint64(KeySequence, seq)
}

// Capacity 创建容量属性
func Capacity(n int) slog.Attr {
	return slog.Int(KeyCapacity, n)
}

// Policy 创建淘汰策略名称属性
func Policy(name string) slog.Attr {
	return slog.String(KeyPolicy, name)
}

// RunID 创建一次运行的唯一标识属性。
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}
