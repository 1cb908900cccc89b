package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/omeyang/xforget/internal/bench"
	"github.com/omeyang/xforget/pkg/config/xconf"
	"github.com/omeyang/xforget/pkg/observability/xlog"
	"github.com/omeyang/xforget/pkg/observability/xmetrics"
	"github.com/omeyang/xforget/pkg/storage/xforget"
)

// usageError 表示参数或配置错误，对应退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createBenchCommand(),
		createDemoCommand(),
		createVersionCommand(),
	}
}

func createBenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "并发压测：随机读写 + 热点键持续读取",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "policy",
				Aliases: []string{"p"},
				Usage:   "淘汰策略 (forget/lru/tinylfu/all)",
			},
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "缓存容量",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "随机读写 goroutine 数",
			},
			&cli.IntFlag{
				Name:  "ops",
				Usage: "每个 worker 的 Add+Find 轮数",
			},
			&cli.IntFlag{
				Name:  "keys",
				Usage: "随机键空间大小",
			},
			&cli.IntFlag{
				Name:  "hot-finds",
				Usage: "每个热点键预热时的查找次数",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "随机种子，0 表示随机",
			},
			&cli.BoolFlag{
				Name:    "metrics",
				Aliases: []string{"m"},
				Usage:   "挂载 OpenTelemetry 指标并在结束后输出累计值（仅 forget 策略）",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			applyBenchFlags(cmd, &s)
			if err := s.Validate(); err != nil {
				return newUsageError(err)
			}
			return cmdBench(ctx, cmd.Root().Writer, cmd.Root().ErrWriter, s, benchOptions{
				seed:    cmd.Uint64("seed"),
				metrics: cmd.Bool("metrics"),
			})
		},
	}
}

func createDemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "演示淘汰场景，打印每个场景的淘汰顺序与保留的键",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logger, cleanup, err := newLogger(s.Log, cmd.Root().ErrWriter)
			if err != nil {
				return newUsageError(err)
			}
			defer func() { _ = cleanup() }()
			return cmdDemo(ctx, cmd.Root().Writer, logger)
		},
	}
}

func createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "打印版本信息",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "xforgetctl %s\n", versionString())
			return err
		},
	}
}

// loadSettings 读取配置文件，并用全局日志参数覆盖。
func loadSettings(cmd *cli.Command) (xconf.Settings, error) {
	s, err := xconf.LoadSettings(cmd.String("config"))
	if err != nil {
		return xconf.Settings{}, newUsageError(err)
	}
	if cmd.IsSet("log-level") {
		s.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		s.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		s.Log.File = cmd.String("log-file")
	}
	if err := s.Validate(); err != nil {
		return xconf.Settings{}, newUsageError(err)
	}
	return s, nil
}

// applyBenchFlags 用命令行参数覆盖 bench 配置，只覆盖显式设置的参数。
func applyBenchFlags(cmd *cli.Command, s *xconf.Settings) {
	if cmd.IsSet("policy") {
		s.Bench.Policy = cmd.String("policy")
	}
	if cmd.IsSet("capacity") {
		s.Cache.Capacity = cmd.Int("capacity")
	}
	if cmd.IsSet("workers") {
		s.Bench.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("ops") {
		s.Bench.Ops = cmd.Int("ops")
	}
	if cmd.IsSet("keys") {
		s.Bench.Keys = cmd.Int("keys")
	}
	if cmd.IsSet("hot-finds") {
		s.Bench.HotFinds = cmd.Int("hot-finds")
	}
}

// newLogger 按配置构建日志器，File 非空时输出到轮转文件，否则输出到 w。
// 构建成功后同时设为全局默认 Logger。
func newLogger(cfg xconf.LogSettings, w io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(w).
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format).
		SetAttrs(xlog.Component("xforgetctl"))
	if cfg.File != "" {
		b = b.SetRotation(cfg.File)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	xlog.SetDefault(logger)
	return logger, cleanup, nil
}

type benchOptions struct {
	seed    uint64
	metrics bool
}

// cmdBench 依次对每个策略执行压测并输出报告。
func cmdBench(ctx context.Context, out, errOut io.Writer, s xconf.Settings, opts benchOptions) error {
	policies, err := bench.Policies(s.Bench.Policy)
	if err != nil {
		return newUsageError(err)
	}
	logger, cleanup, err := newLogger(s.Log, errOut)
	if err != nil {
		return newUsageError(err)
	}
	defer func() { _ = cleanup() }()
	runID := uuid.NewString()
	runLogger := logger.With(xlog.RunID(runID))

	w := bench.Workload{
		Capacity: s.Cache.Capacity,
		Workers:  s.Bench.Workers,
		Ops:      s.Bench.Ops,
		Keys:     s.Bench.Keys,
		HotKeys:  s.Bench.HotKeys,
		HotFinds: s.Bench.HotFinds,
		Seed:     opts.seed,
	}
	if err := w.Validate(); err != nil {
		return newUsageError(err)
	}

	var (
		provider *sdkmetric.MeterProvider
		reader   *sdkmetric.ManualReader
	)
	forgetOpts := []xforget.Option[string, int]{xforget.WithLogger[string, int](runLogger)}
	if opts.metrics {
		provider, reader = xmetrics.NewManualProvider(
			attribute.String("service.name", "xforgetctl"),
			attribute.String("service.version", Version),
		)
		defer func() { _ = provider.Shutdown(context.WithoutCancel(ctx)) }()
		recorder, err := xmetrics.NewOTelRecorder(
			xmetrics.WithMeterProvider(provider),
			xmetrics.WithCacheName(s.Cache.Name),
		)
		if err != nil {
			return err
		}
		forgetOpts = append(forgetOpts, xforget.WithRecorder[string, int](recorder))
	}

	reports := make([]bench.Report, 0, len(policies))
	for _, policy := range policies {
		report, err := runPolicy(ctx, policy, w, runLogger, forgetOpts)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}
	if err := printReports(out, runID, w, reports); err != nil {
		return err
	}

	if reader == nil {
		return nil
	}
	totals, err := xmetrics.Collect(ctx, reader, s.Cache.Name)
	if err != nil {
		return err
	}
	return printTotals(out, s.Cache.Name, totals)
}

func runPolicy(ctx context.Context, policy string, w bench.Workload, logger xlog.Logger, opts []xforget.Option[string, int]) (bench.Report, error) {
	target, err := bench.NewTarget(policy, w.Capacity, opts...)
	if err != nil {
		if errors.Is(err, bench.ErrUnknownPolicy) || errors.Is(err, xforget.ErrInvalidCapacity) ||
			errors.Is(err, xforget.ErrCapacityExceedsMax) {
			return bench.Report{}, newUsageError(err)
		}
		return bench.Report{}, err
	}
	defer target.Close()

	report, err := bench.Run(ctx, target, w, logger)
	if err != nil {
		return bench.Report{}, fmt.Errorf("bench %s: %w", policy, err)
	}
	return report, nil
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		xlog.Warn(context.Background(), "received signal, stopping", slog.String("signal", sig.String()))
		cancel() // 第一次信号: 停止压测

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130) // 第二次信号: 强制退出
	}()
}
