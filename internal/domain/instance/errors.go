package instance

import (
	"fmt"

	"github.com/luocheng/library/pkg/errors"
)

// 馆藏副本领域错误定义
var (
	// ErrCopyNotFound 副本不存在
	ErrCopyNotFound = errors.New(errors.ErrCodeCopyNotFound, "book instance not found")

	// ErrCopyListMissing 副本清单缺失
	// 与"清单为空"不同:存储层无法给出该图书的副本集合时返回此错误
	ErrCopyListMissing = errors.New(errors.ErrCodeDetailsNotFound, "book instance list missing")

	// ErrInvalidStatus 非法状态值
	ErrInvalidStatus = errors.New(errors.ErrCodeInvalidParams, "invalid instance status")

	// ErrInvalidImprint 版次信息为空
	ErrInvalidImprint = errors.New(errors.ErrCodeInvalidParams, "imprint is required")
)

// transitionError 构造非法状态流转错误
func transitionError(from, to Status) error {
	return errors.New(errors.ErrCodeInvalidTransition,
		fmt.Sprintf("invalid status transition: %s -> %s", from, to))
}
