package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/omeyang/xforget/pkg/observability/xlog"
	"github.com/omeyang/xforget/pkg/storage/xforget"
)

// demoStep 写入一个键后立即查找 finds 次。
type demoStep struct {
	key   string
	finds int
}

type demoScenario struct {
	name     string
	capacity int
	steps    []demoStep
}

// demoScenarios 覆盖容量淘汰、最少使用淘汰和同使用次数下的先进先出。
var demoScenarios = []demoScenario{
	{
		name:     "over-capacity",
		capacity: 2,
		steps:    []demoStep{{"1", 0}, {"2", 0}, {"3", 0}},
	},
	{
		name:     "least-used",
		capacity: 5,
		steps: []demoStep{
			{"k1", 3}, {"k2", 2}, {"k3", 3}, {"k4", 3}, {"k5", 3}, {"k6", 1},
		},
	},
	{
		name:     "oldest-of-least-used",
		capacity: 5,
		steps: []demoStep{
			{"k1", 2}, {"k2", 3}, {"k3", 3}, {"k4", 2}, {"k5", 3}, {"k6", 3},
		},
	},
}

// demoResult 是单个场景的运行结果。
type demoResult struct {
	name    string
	evicted []string
	// kept 按淘汰优先级排序，第一个是下一个被淘汰的键。
	kept []string
}

func runScenario(sc demoScenario, logger xlog.Logger) (demoResult, error) {
	res := demoResult{name: sc.name}
	c, err := xforget.New(xforget.Config{Capacity: sc.capacity},
		xforget.WithLogger[string, int](logger),
		xforget.WithOnEvicted(func(key string, _ int) {
			res.evicted = append(res.evicted, key)
		}),
	)
	if err != nil {
		return demoResult{}, err
	}
	for i, step := range sc.steps {
		c.Add(step.key, i)
		for range step.finds {
			c.Find(step.key)
		}
	}
	res.kept = c.Keys()
	return res, nil
}

// cmdDemo 依次运行所有演示场景。
func cmdDemo(ctx context.Context, out io.Writer, logger xlog.Logger) error {
	for _, sc := range demoScenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := runScenario(sc, logger)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", sc.name, err)
		}
		fmt.Fprintf(out, "%s (capacity=%d)\n", sc.name, sc.capacity)
		for _, step := range sc.steps {
			fmt.Fprintf(out, "  add %s, find x%d\n", step.key, step.finds)
		}
		fmt.Fprintf(out, "  evicted: %s\n", strings.Join(res.evicted, " "))
		fmt.Fprintf(out, "  kept:    %s\n\n", strings.Join(res.kept, " "))
	}
	return nil
}
