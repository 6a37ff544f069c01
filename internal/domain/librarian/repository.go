package librarian

import (
	"context"
)

// Repository 馆员仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建馆员
	// 注意：如果邮箱已存在，应返回errors.ErrEmailDuplicate
	Create(ctx context.Context, lib *Librarian) error

	// FindByID 根据ID查找馆员
	// 如果不存在，返回errors.ErrLibrarianNotFound
	FindByID(ctx context.Context, id string) (*Librarian, error)

	// FindByEmail 根据邮箱查找馆员
	// 如果不存在，返回errors.ErrLibrarianNotFound
	FindByEmail(ctx context.Context, email string) (*Librarian, error)

	// Update 更新馆员信息
	Update(ctx context.Context, lib *Librarian) error
}
