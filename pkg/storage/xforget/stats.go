package xforget

import "sync/atomic"

// Stats 是缓存统计信息的快照。
type Stats struct {
	// Hits 命中的 Find 次数。
	Hits uint64

	// Misses 未命中的 Find 次数。
	Misses uint64

	// Inserts 新键插入次数。
	Inserts uint64

	// Replacements 对已存在键的原地替换次数。
	Replacements uint64

	// Evictions 淘汰次数。
	Evictions uint64
}

// HitRatio 返回命中率 (0.0 - 1.0)，没有任何查找时返回 0。
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// counters 使用原子计数，统计路径不持锁。
type counters struct {
	hits         atomic.Uint64
	misses       atomic.Uint64
	inserts      atomic.Uint64
	replacements atomic.Uint64
	evictions    atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Inserts:      c.inserts.Load(),
		Replacements: c.replacements.Load(),
		Evictions:    c.evictions.Load(),
	}
}
