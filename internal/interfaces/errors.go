package interfaces

import "errors"

var (
	// ErrNotFound 引用的球队/联赛/赛季没有数据。计算器遇到它返回全零记录。
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable 存储不可用或查询失败，必须向上传递
	ErrStoreUnavailable = errors.New("match store unavailable")
)
