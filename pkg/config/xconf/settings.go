package xconf

import (
	"errors"
	"fmt"

	"github.com/omeyang/xforget/pkg/observability/xlog"
	"github.com/omeyang/xforget/pkg/storage/xforget"
)

// 默认配置值
const (
	DefaultCapacity  = 5
	DefaultCacheName = "forget"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultWorkers   = 5
	DefaultOps       = 500_000
	DefaultKeys      = 10_000
	DefaultHotFinds  = 3
	DefaultPolicy    = "forget"
)

// DefaultHotKeys 压测前预热的热点键。
var DefaultHotKeys = []string{"-1", "-100"}

// Settings 是 xforgetctl 的完整配置。
//
//	cache:
//	  capacity: 5
//	  name: forget
//	log:
//	  level: info
//	  format: text
//	  file: ""
//	bench:
//	  policy: forget
//	  workers: 5
//	  ops: 500000
//	  keys: 10000
//	  hot_keys: ["-1", "-100"]
//	  hot_finds: 3
type Settings struct {
	Cache CacheSettings `koanf:"cache"`
	Log   LogSettings   `koanf:"log"`
	Bench BenchSettings `koanf:"bench"`
}

// CacheSettings 缓存配置。
type CacheSettings struct {
	// Capacity 缓存容量。
	Capacity int `koanf:"capacity"`
	// Name 缓存名称，作为指标的 cache 属性。
	Name string `koanf:"name"`
}

// LogSettings 日志配置。
type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File 非空时输出到按大小轮转的文件。
	File string `koanf:"file"`
}

// BenchSettings 压测配置。
type BenchSettings struct {
	// Policy 淘汰策略：forget、lru、tinylfu 或 all。
	Policy string `koanf:"policy"`
	// Workers 并发写入的 goroutine 数（另有一个热点读取 goroutine）。
	Workers int `koanf:"workers"`
	// Ops 每个 worker 执行的 Add+Find 轮数。
	Ops int `koanf:"ops"`
	// Keys 随机键空间大小。
	Keys int `koanf:"keys"`
	// HotKeys 压测开始前预热的键。
	HotKeys []string `koanf:"hot_keys"`
	// HotFinds 每个热点键预热时的查找次数。
	HotFinds int `koanf:"hot_finds"`
}

// DefaultSettings 返回默认配置。
func DefaultSettings() Settings {
	var s Settings
	s.applyDefaults()
	return s
}

// applyDefaults 为零值字段填充默认值。
func (s *Settings) applyDefaults() {
	if s.Cache.Capacity == 0 {
		s.Cache.Capacity = DefaultCapacity
	}
	if s.Cache.Name == "" {
		s.Cache.Name = DefaultCacheName
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
	if s.Log.Format == "" {
		s.Log.Format = DefaultLogFormat
	}
	if s.Bench.Policy == "" {
		s.Bench.Policy = DefaultPolicy
	}
	if s.Bench.Workers == 0 {
		s.Bench.Workers = DefaultWorkers
	}
	if s.Bench.Ops == 0 {
		s.Bench.Ops = DefaultOps
	}
	if s.Bench.Keys == 0 {
		s.Bench.Keys = DefaultKeys
	}
	if s.Bench.HotKeys == nil {
		s.Bench.HotKeys = append([]string(nil), DefaultHotKeys...)
	}
	if s.Bench.HotFinds == 0 {
		s.Bench.HotFinds = DefaultHotFinds
	}
}

// Validate 校验配置，返回的错误包装 ErrInvalidSettings。
func (s Settings) Validate() error {
	var errs []error
	if err := (xforget.Config{Capacity: s.Cache.Capacity}).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cache.capacity: %w", err))
	}
	if _, err := xlog.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if s.Log.Format != "text" && s.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: %q is not text or json", s.Log.Format))
	}
	if s.Bench.Workers < 0 {
		errs = append(errs, fmt.Errorf("bench.workers: must be positive, got %d", s.Bench.Workers))
	}
	if s.Bench.Ops < 0 {
		errs = append(errs, fmt.Errorf("bench.ops: must be positive, got %d", s.Bench.Ops))
	}
	if s.Bench.Keys < 0 {
		errs = append(errs, fmt.Errorf("bench.keys: must be positive, got %d", s.Bench.Keys))
	}
	if s.Bench.HotFinds < 0 {
		errs = append(errs, fmt.Errorf("bench.hot_finds: must not be negative, got %d", s.Bench.HotFinds))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

// LoadSettings 加载 xforgetctl 配置。
//
// path 为空时返回默认配置；否则读取文件，未出现的字段取默认值，最后统一校验。
func LoadSettings(path string, opts ...Option) (Settings, error) {
	var s Settings
	if path != "" {
		cfg, err := New(path, opts...)
		if err != nil {
			return Settings{}, err
		}
		if err := cfg.Unmarshal("", &s); err != nil {
			return Settings{}, err
		}
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
