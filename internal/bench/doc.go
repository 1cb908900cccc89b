// Package bench 驱动并发读写负载，对比不同淘汰策略在相同负载下的表现。
//
// 负载模型：先预热若干热点键（写入后查找 HotFinds 次），
// 再由 Workers 个 goroutine 在 [0, Keys) 的随机键空间上执行 Add+Find，
// 同时一个读取 goroutine 持续查找第一个热点键。
//
// 支持的策略：
//   - forget：xforget（使用次数最少者淘汰，平局取最早插入）
//   - lru：hashicorp/golang-lru（最近最少使用）
//   - tinylfu：ristretto（TinyLFU 准入 + SampledLFU 淘汰，写入异步）
package bench
