package bench

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/omeyang/xforget/pkg/storage/xforget"
)

// 策略名称
const (
	PolicyForget  = "forget"
	PolicyLRU     = "lru"
	PolicyTinyLFU = "tinylfu"
	PolicyAll     = "all"
)

// Target 是被压测的缓存。
type Target interface {
	Name() string
	Add(key string, value int)
	Find(key string) (int, bool)
	// Contains 检查键是否存在。实现可能有副作用（见 tinyLFUTarget），
	// Run 只在读取 Size 之后调用它。
	Contains(key string) bool
	Size() int
	Close()
}

// Policies 展开策略名称，"all" 展开为全部策略。
func Policies(policy string) ([]string, error) {
	switch p := strings.ToLower(strings.TrimSpace(policy)); p {
	case PolicyAll:
		return []string{PolicyForget, PolicyLRU, PolicyTinyLFU}, nil
	case PolicyForget, PolicyLRU, PolicyTinyLFU:
		return []string{p}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// NewTarget 按策略名称创建被压测的缓存。
// forget 策略可以通过 opts 挂载日志、指标等可选配置，其余策略忽略 opts。
func NewTarget(policy string, capacity int, opts ...xforget.Option[string, int]) (Target, error) {
	switch policy {
	case PolicyForget:
		c, err := xforget.New(xforget.Config{Capacity: capacity}, opts...)
		if err != nil {
			return nil, err
		}
		return forgetTarget{c}, nil
	case PolicyLRU:
		c, err := lru.New[string, int](capacity)
		if err != nil {
			return nil, fmt.Errorf("bench: create lru: %w", err)
		}
		return lruTarget{c}, nil
	case PolicyTinyLFU:
		return newTinyLFUTarget(capacity)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

type forgetTarget struct {
	c *xforget.Cache[string, int]
}

func (t forgetTarget) Name() string                { return PolicyForget }
func (t forgetTarget) Add(key string, value int)   { t.c.Add(key, value) }
func (t forgetTarget) Find(key string) (int, bool) { return t.c.Find(key) }
func (t forgetTarget) Contains(key string) bool    { return t.c.Contains(key) }
func (t forgetTarget) Size() int                   { return t.c.Size() }
func (t forgetTarget) Close()                      {}

type lruTarget struct {
	c *lru.Cache[string, int]
}

func (t lruTarget) Name() string                { return PolicyLRU }
func (t lruTarget) Add(key string, value int)   { t.c.Add(key, value) }
func (t lruTarget) Find(key string) (int, bool) { return t.c.Get(key) }
func (t lruTarget) Contains(key string) bool    { return t.c.Contains(key) }
func (t lruTarget) Size() int                   { return t.c.Len() }
func (t lruTarget) Close()                      {}

// tinyLFUTarget 基于 ristretto，每个条目 cost 为 1，MaxCost 即容量。
// ristretto 写入是异步的并且可能被准入策略拒绝，Size 由指标推算。
type tinyLFUTarget struct {
	c *ristretto.Cache[string, int]
}

func newTinyLFUTarget(capacity int) (Target, error) {
	if capacity <= 0 {
		return nil, xforget.ErrInvalidCapacity
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters:        int64(capacity) * 10,
		MaxCost:            int64(capacity),
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("bench: create ristretto: %w", err)
	}
	return tinyLFUTarget{c}, nil
}

func (t tinyLFUTarget) Name() string                { return PolicyTinyLFU }
func (t tinyLFUTarget) Add(key string, value int)   { t.c.Set(key, value, 1) }
func (t tinyLFUTarget) Find(key string) (int, bool) { return t.c.Get(key) }

// Contains 通过 Get 实现：ristretto 没有无副作用的存在性查询，
// Get 会递增频率草图和命中/未命中计数，但不影响 KeysAdded/KeysEvicted，
// 因此 Size 的结果不受影响。
func (t tinyLFUTarget) Contains(key string) bool {
	_, ok := t.c.Get(key)
	return ok
}

func (t tinyLFUTarget) Size() int {
	t.c.Wait()
	m := t.c.Metrics
	return int(m.KeysAdded() - m.KeysEvicted())
}

func (t tinyLFUTarget) Close() { t.c.Close() }
