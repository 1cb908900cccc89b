// Package xforget 提供按使用次数淘汰的定容缓存。
//
// 缓存容量在创建时固定，写满后每次插入新键都会淘汰恰好一个条目：
// 使用次数（成功 Find 的次数）最少者优先；使用次数相同时，插入最早者优先。
//
// # 核心特性
//
//   - 泛型支持：键为任意 comparable 类型，值为任意类型
//   - 容量不变式：任意时刻 Size() <= Capacity()
//   - 使用计数：每次命中的 Find 原子地 +1，并发查找同一键不会丢失计数
//   - 确定性淘汰：(使用次数升序, 插入序号升序) 两级排序，序号显式维护，与键的自然顺序无关
//   - 并发安全：所有方法都可被多个 goroutine 同时调用
//
// # 配置
//
// Config 提供必需配置：
//   - Capacity：最大条目数，必须 > 0 且 ≤ 16,777,216
//
// 可选配置通过 Option 函数提供：
//   - WithOnEvicted：条目被淘汰后的回调
//   - WithLogger：淘汰事件的 Debug 日志
//   - WithRecorder：命中/未命中/插入/淘汰指标
//
// # 并发模型
//
// Add 在写锁内完成"检查容量 → 选择并移除淘汰者 → 插入"，
// 两个并发 Add 不可能同时看到"未满"而突破容量。
// Find/Peek/Size 只持读锁，彼此之间不串行；使用计数是条目级原子变量。
// 回调、日志与指标都在释放锁之后执行。
//
// # 注意事项
//
//   - 对已存在的键调用 Add 是原地替换：使用次数清零、分配新序号，不触发淘汰
//   - 未命中不是错误：Find 返回零值和 false
//   - 没有 Delete/Clear/Close：缓存随对象被丢弃而结束生命周期
//   - 淘汰选择是 O(n) 线性扫描，适合中小容量
package xforget
