// Package xmetrics 提供缓存事件的指标记录接口。
//
// # 设计理念
//
// xmetrics 仅定义最小化接口 Recorder，缓存实现只依赖接口；
// 默认实现 NoopRecorder 不做任何事，OTel 实现基于 OpenTelemetry metric API，
// 兼容主流可观测栈。
//
// # 使用示例
//
//	rec, err := xmetrics.NewOTelRecorder(
//		xmetrics.WithCacheName("sessions"),
//		xmetrics.WithMeterProvider(mp),
//	)
//	if err != nil {
//		return err
//	}
//	cache, err := xforget.New[string, []byte](xforget.Config{Capacity: 1024},
//		xforget.WithRecorder[string, []byte](rec))
//
// # 指标命名
//
//   - xforget.cache.lookups   查找次数，属性 result=hit|miss
//   - xforget.cache.inserts   写入次数，属性 kind=new|replace
//   - xforget.cache.evictions 淘汰次数
//   - xforget.cache.size      当前条目数（UpDownCounter）
//
// 所有指标都带 cache=<name> 属性，用于区分同一进程中的多个缓存。
package xmetrics
