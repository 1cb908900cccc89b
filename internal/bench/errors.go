package bench

import "errors"

var (
	// ErrUnknownPolicy 表示不支持的淘汰策略名称。
	ErrUnknownPolicy = errors.New("bench: unknown policy")

	// ErrInvalidWorkload 表示负载参数不合法。
	ErrInvalidWorkload = errors.New("bench: invalid workload")
)
