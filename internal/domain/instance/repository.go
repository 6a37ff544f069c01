package instance

import (
	"context"
)

// CopyProjection 副本投影,仅携带详情展示所需的两个字段
type CopyProjection struct {
	Imprint string
	Status  string
}

// Repository 馆藏副本仓储接口
type Repository interface {
	// Create 入库副本
	Create(ctx context.Context, inst *BookInstance) error

	// FindByID 根据ID查找副本
	FindByID(ctx context.Context, id string) (*BookInstance, error)

	// Update 保存副本状态变更
	Update(ctx context.Context, inst *BookInstance) error

	// FindProjectionsByBook 查询某图书全部副本的展示投影
	// 行为约定:
	// - 返回nil表示副本清单缺失(存储层不可用或集合不可得)
	// - 返回空切片表示图书确实没有任何副本,两者语义不同
	FindProjectionsByBook(ctx context.Context, bookID string) ([]CopyProjection, error)
}
