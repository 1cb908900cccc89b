// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持按大小轮转的日志文件
//   - xmetrics: 缓存事件指标，基于 OpenTelemetry
//
// 缓存等库代码默认不输出日志、不记录指标，由调用方通过选项显式挂载。
package observability
