// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、文件轮转）
//   - 动态级别调整（运行时热更新，派生 logger 共享级别）
//   - 全局 Logger 便利函数
//   - 缓存领域常用属性（Key、Usage、Sequence、Capacity 等）
//
// # 创建 Logger
//
// Builder 遵循 first-error-wins：遇到第一个配置错误后，Build 返回该错误。
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xforget/app.log").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// # 全局 Logger
//
// 适用于命令行工具等简单场景，库代码推荐显式注入 Logger：
//
//   - [Default]: 获取全局 Logger（惰性初始化：stderr、Info 级别、text 格式）
//   - [SetDefault]: 替换全局 Logger（nil 会被忽略）
//   - [Warn]: 全局便利函数，用于没有注入 Logger 的入口代码（如信号处理）
//
// 不需要日志时使用 [Discard]。
package xlog
