package xmetrics

//go:generate mockgen -source=recorder.go -destination=../../storage/xforget/recorder_mock_test.go -package=xforget

// Recorder 定义缓存事件记录接口。
//
// 实现必须并发安全，且不得回调缓存自身：缓存在释放锁之后同步调用这些方法。
type Recorder interface {
	// Lookup 记录一次查找，hit 表示是否命中。
	Lookup(hit bool)

	// Insert 记录一次写入，replaced 表示是否为已存在键的原地替换。
	Insert(replaced bool)

	// Evict 记录一次淘汰。
	Evict()

	// Resize 记录条目数变化（+1 插入新键，-1 淘汰）。
	Resize(delta int64)
}

// NoopRecorder 是空实现。
type NoopRecorder struct{}

// Lookup 空实现。
func (NoopRecorder) Lookup(bool) {}

// Insert 空实现。
func (NoopRecorder) Insert(bool) {}

// Evict 空实现。
func (NoopRecorder) Evict() {}

// Resize 空实现。
func (NoopRecorder) Resize(int64) {}

// 编译时接口检查
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*otelRecorder)(nil)
)
