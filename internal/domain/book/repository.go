package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 详情接口只依赖两个窄能力:按ID查图书并解析作者、按图书查副本投影,
//    便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 入藏图书
	Create(ctx context.Context, book *Book) error

	// FindByIDWithAuthor 根据ID查找图书并解析作者关联
	// 行为约定:
	// - 图书不存在返回ErrBookNotFound
	// - 图书存在但作者行缺失时,返回的Book.Author为nil(不报错,由上层定性)
	FindByIDWithAuthor(ctx context.Context, id string) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// AuthorRepository 作者仓储接口
type AuthorRepository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByName 根据姓名查找作者(入藏时复用已有作者)
	FindByName(ctx context.Context, name string) (*Author, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、ISBN)
	SortBy   string // 排序字段(title_asc, created_at_desc)
}
