package database

import (
	"errors"
)

// 业务错误哨兵值，API层用errors.Is映射为HTTP状态码
// 包装时带上出问题的id或代码
var (
	ErrStockNotFound     = errors.New("股票不存在")
	ErrHoldingNotFound   = errors.New("持仓不存在")
	ErrWatchlistNotFound = errors.New("自选股条目不存在")
	ErrTaskNotFound      = errors.New("任务不存在")
	ErrSymbolExists      = errors.New("股票代码已存在")
)
