package xforget

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xforget/pkg/observability/xlog"
	"github.com/omeyang/xforget/pkg/observability/xmetrics"
)

// initialMapHint 创建时预分配的最大桶数，避免大容量缓存在空载时占用过多内存。
const initialMapHint = 1024

// entry 是缓存中的一个条目。
// value 与 seq 在创建后不再修改；usage 只由 Find 原子递增。
type entry[V any] struct {
	value V
	seq   uint64
	usage atomic.Uint64
}

// Cache 是按使用次数淘汰的定容缓存。
// 必须通过 [New] 创建，零值不可用。
// 所有方法都是并发安全的。
type Cache[K comparable, V any] struct {
	capacity int

	// mu 保护 entries 与 nextSeq。
	// Add 持写锁；只读路径持读锁，使用计数靠条目自身的原子变量递增。
	mu      sync.RWMutex
	entries map[K]*entry[V]
	nextSeq uint64

	counters  counters
	onEvicted func(key K, value V)
	logger    xlog.Logger
	recorder  xmetrics.Recorder
}

// New 创建缓存。
// 如果 cfg.Capacity <= 0，返回 ErrInvalidCapacity。
// 如果 cfg.Capacity > MaxCapacity，返回 ErrCapacityExceedsMax。
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options[K, V]{
		recorder: xmetrics.NoopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return &Cache[K, V]{
		capacity:  cfg.Capacity,
		entries:   make(map[K]*entry[V], min(cfg.Capacity, initialMapHint)),
		onEvicted: o.onEvicted,
		logger:    groupLogger(o.logger),
		recorder:  o.recorder,
	}, nil
}

// groupLogger 把缓存的日志属性放在 xforget 分组下，避免与调用方的属性重名。
func groupLogger(l xlog.Logger) xlog.Logger {
	if l == nil {
		return nil
	}
	return l.WithGroup("xforget")
}

// Add 写入键值对。
//
//   - 键已存在：原地替换，使用次数清零并分配新序号，不触发淘汰
//   - 键不存在且未满：直接插入
//   - 键不存在且已满：先淘汰恰好一个条目（使用次数最少，平局取最早插入），再插入
//
// "检查容量 → 淘汰 → 插入"在同一把写锁内完成。
func (c *Cache[K, V]) Add(key K, value V) {
	var (
		victimKey K
		victim    *entry[V]
		replaced  bool
	)

	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		replaced = true
	} else if len(c.entries) >= c.capacity {
		victimKey, victim = c.selectVictim()
		if victim != nil {
			delete(c.entries, victimKey)
		}
	}
	c.entries[key] = &entry[V]{value: value, seq: c.nextSeq}
	c.nextSeq++
	c.mu.Unlock()

	if replaced {
		c.counters.replacements.Add(1)
	} else {
		c.counters.inserts.Add(1)
		c.recorder.Resize(1)
	}
	c.recorder.Insert(replaced)

	if victim != nil {
		c.evicted(victimKey, victim)
	}
}

// evicted 处理一次淘汰的后续动作，调用时不得持有锁。
func (c *Cache[K, V]) evicted(key K, e *entry[V]) {
	c.counters.evictions.Add(1)
	c.recorder.Evict()
	c.recorder.Resize(-1)

	if c.logger != nil {
		c.logger.Debug(context.Background(), "entry evicted",
			xlog.Key(key),
			xlog.Usage(e.usage.Load()),
			xlog.Sequence(e.seq),
			xlog.Capacity(c.capacity),
		)
	}
	if c.onEvicted != nil {
		c.onEvicted(key, e.value)
	}
}

// Find 查找键。
// 命中时使用次数原子 +1 并返回值和 true；未命中返回零值和 false，无任何副作用。
func (c *Cache[K, V]) Find(key K) (value V, ok bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	if ok {
		e.usage.Add(1)
		value = e.value
	}
	c.mu.RUnlock()

	if ok {
		c.counters.hits.Add(1)
	} else {
		c.counters.misses.Add(1)
	}
	c.recorder.Lookup(ok)
	return value, ok
}

// Size 返回当前条目数，恒不大于 Capacity()。
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Capacity 返回缓存容量。
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Peek 获取值但不增加使用次数。
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return value, false
	}
	return e.value, true
}

// Contains 检查键是否存在，不增加使用次数。
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Usage 返回键当前的使用次数。
func (c *Cache[K, V]) Usage(key K) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	return e.usage.Load(), true
}

// Stats 返回统计信息快照。
func (c *Cache[K, V]) Stats() Stats {
	return c.counters.snapshot()
}

// LogValue 实现 slog.LogValuer，便于直接把缓存状态写入日志。
func (c *Cache[K, V]) LogValue() slog.Value {
	s := c.Stats()
	return slog.GroupValue(
		slog.Int("size", c.Size()),
		slog.Int("capacity", c.capacity),
		slog.Uint64("hits", s.Hits),
		slog.Uint64("misses", s.Misses),
		slog.Uint64("evictions", s.Evictions),
	)
}
