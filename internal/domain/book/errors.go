package book

import (
	apperrors "github.com/luocheng/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeNotFound, "作者不存在")

	// ErrAuthorUnresolved 图书作者关联缺失
	// 图书行存在但author_id指向的作者行缺失,属于数据完整性缺陷,
	// 对外表现与上游故障一致(详情接口返回500)
	ErrAuthorUnresolved = apperrors.New(apperrors.ErrCodeDataCorrupted, "图书作者关联缺失")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidTitle 书名不合法
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidAuthorName 作者姓名不合法
	ErrInvalidAuthorName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")
)
