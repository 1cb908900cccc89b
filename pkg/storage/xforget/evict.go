package xforget

import (
	"cmp"
	"slices"
)

// selectVictim 选出下一个淘汰者：使用次数最少，平局时序号最小（最早插入）。
// 调用方必须持有写锁；此时没有 Find 在运行，读到的使用次数是一致快照。
// 缓存为空时返回 nil。
func (c *Cache[K, V]) selectVictim() (K, *entry[V]) {
	var (
		victimKey   K
		victim      *entry[V]
		victimUsage uint64
	)
	for k, e := range c.entries {
		u := e.usage.Load()
		if victim == nil || evictsBefore(u, e.seq, victimUsage, victim.seq) {
			victimKey, victim, victimUsage = k, e, u
		}
	}
	return victimKey, victim
}

// evictsBefore 报告 (usageA, seqA) 是否排在 (usageB, seqB) 之前被淘汰。
func evictsBefore(usageA, seqA, usageB, seqB uint64) bool {
	if usageA != usageB {
		return usageA < usageB
	}
	return seqA < seqB
}

// rank 是某个键在淘汰顺序中的位置信息。
type rank[K comparable] struct {
	key   K
	usage uint64
	seq   uint64
}

// Keys 返回所有键，按淘汰优先级排序：下一个会被淘汰的键排在最前。
//
// 快照期间并发的 Find 仍可能递增使用次数，因此结果只反映调用瞬间的近似顺序。
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	ranks := make([]rank[K], 0, len(c.entries))
	for k, e := range c.entries {
		ranks = append(ranks, rank[K]{key: k, usage: e.usage.Load(), seq: e.seq})
	}
	c.mu.RUnlock()

	slices.SortFunc(ranks, func(a, b rank[K]) int {
		if n := cmp.Compare(a.usage, b.usage); n != 0 {
			return n
		}
		return cmp.Compare(a.seq, b.seq)
	})

	keys := make([]K, len(ranks))
	for i, r := range ranks {
		keys[i] = r.key
	}
	return keys
}
