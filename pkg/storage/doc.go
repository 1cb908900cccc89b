// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xforget: 固定容量的进程内缓存，满时淘汰使用次数最少的条目
package storage
