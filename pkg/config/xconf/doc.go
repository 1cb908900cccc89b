// Package xconf 提供基于 koanf 的配置加载。
//
// # 支持格式
//
//   - YAML（.yaml / .yml）
//   - JSON（.json）
//
// 文件格式由扩展名决定；从字节加载时需要显式指定格式。
//
// # 基本用法
//
//	cfg, err := xconf.New("/etc/xforget/config.yaml")
//	if err != nil {
//		return err
//	}
//	var s xconf.Settings
//	if err := cfg.Unmarshal("", &s); err != nil {
//		return err
//	}
//
// xforgetctl 的配置模式见 [Settings]，推荐通过 [LoadSettings] 一步完成
// 默认值填充、文件覆盖与校验。
//
// # 注意事项
//
//   - 结构体标签默认为 koanf，可通过 WithTag 修改
//   - Reload 仅对从文件创建的 Config 有效
//   - Unmarshal 只覆盖文件中出现的字段，目标结构体中已有的值保留，可借此实现默认值
package xconf
