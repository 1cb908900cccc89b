package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xforget/pkg/observability/xlog"
)

// ctxCheckInterval 每执行多少次操作检查一次 ctx 是否已取消。
const ctxCheckInterval = 1024

// Workload 描述一次压测负载。
type Workload struct {
	// Capacity 缓存容量。
	Capacity int
	// Workers 随机读写 goroutine 数。
	Workers int
	// Ops 每个 worker 的 Add+Find 轮数，也是热点读取 goroutine 的查找次数。
	Ops int
	// Keys 随机键空间大小。
	Keys int
	// HotKeys 预热的热点键，第一个键由读取 goroutine 持续查找。
	HotKeys []string
	// HotFinds 每个热点键预热时的查找次数。
	HotFinds int
	// Seed 随机种子，0 表示每次运行使用不同的随机序列。
	Seed uint64
}

// Validate 校验负载参数。
func (w Workload) Validate() error {
	var errs []error
	if w.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", w.Capacity))
	}
	if w.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", w.Workers))
	}
	if w.Ops <= 0 {
		errs = append(errs, fmt.Errorf("ops must be positive, got %d", w.Ops))
	}
	if w.Keys <= 0 {
		errs = append(errs, fmt.Errorf("keys must be positive, got %d", w.Keys))
	}
	if w.HotFinds < 0 {
		errs = append(errs, fmt.Errorf("hot finds must not be negative, got %d", w.HotFinds))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidWorkload, errors.Join(errs...))
}

// Report 是一次压测的结果。
type Report struct {
	Policy string
	// Ops 随机读写阶段执行的 Add 与 Find 总数。
	Ops int64
	// Hits、Misses 是随机读写阶段 Find 的命中与未命中次数。
	Hits   int64
	Misses int64
	// HotReaderMisses 热点读取 goroutine 未命中（或读到错误值）的次数。
	HotReaderMisses int64
	// HotSurvivors 压测结束后仍在缓存中的热点键。
	HotSurvivors []string
	FinalSize    int
	Elapsed      time.Duration
}

// HitRatio 返回随机读写阶段的命中率。
func (r Report) HitRatio() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}

// NsPerOp 返回平均每次操作的耗时（纳秒）。
func (r Report) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Ops)
}

// hotValue 是第 i 个热点键的值，负数不会与随机键的值冲突。
func hotValue(i int) int {
	return -(i + 1)
}

// Run 在 target 上执行负载。ctx 取消时尽快停止并返回 ctx 的错误。
// logger 为 nil 时使用 xlog.Default()。
func Run(ctx context.Context, target Target, w Workload, logger xlog.Logger) (Report, error) {
	if err := w.Validate(); err != nil {
		return Report{}, err
	}
	if logger == nil {
		logger = xlog.Default()
	}
	seed := w.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	for i, key := range w.HotKeys {
		target.Add(key, hotValue(i))
		for range w.HotFinds {
			target.Find(key)
		}
	}
	logger.Debug(ctx, "hot keys warmed",
		xlog.Policy(target.Name()),
		xlog.Count(int64(len(w.HotKeys))),
	)

	var hits, misses, hotMisses atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for worker := range w.Workers {
		rng := rand.New(rand.NewPCG(seed, uint64(worker)))
		g.Go(func() error {
			var h, m int64
			defer func() {
				hits.Add(h)
				misses.Add(m)
			}()
			for i := range w.Ops {
				if i%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				n := rng.IntN(w.Keys)
				key := strconv.Itoa(n)
				target.Add(key, n)
				if _, ok := target.Find(key); ok {
					h++
				} else {
					m++
				}
			}
			return nil
		})
	}
	if len(w.HotKeys) > 0 {
		hotKey := w.HotKeys[0]
		g.Go(func() error {
			for i := range w.Ops {
				if i%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if v, ok := target.Find(hotKey); !ok || v != hotValue(0) {
					hotMisses.Add(1)
				}
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)

	report := Report{
		Policy:          target.Name(),
		Ops:             2 * (hits.Load() + misses.Load()),
		Hits:            hits.Load(),
		Misses:          misses.Load(),
		HotReaderMisses: hotMisses.Load(),
		FinalSize:       target.Size(),
		Elapsed:         elapsed,
	}
	for _, key := range w.HotKeys {
		if target.Contains(key) {
			report.HotSurvivors = append(report.HotSurvivors, key)
		}
	}
	if err != nil {
		return report, err
	}

	logger.Info(ctx, "bench finished",
		xlog.Policy(report.Policy),
		xlog.Count(report.Ops),
		xlog.Duration(elapsed),
	)
	return report, nil
}
