package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/luocheng/library/internal/domain/book"
	apperrors "github.com/luocheng/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:       b.ID,
		Title:    b.Title,
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		AuthorID: b.AuthorID,
	}

	// 参与上层事务(入藏时与作者写入同事务)
	db := dbFromContext(ctx, r.db)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByIDWithAuthor 根据ID查找图书并解析作者关联
// 设计说明:
// 1. Preload("Author")一并取出作者行
// 2. 作者行缺失时model.Author为nil,按约定原样带回(不在此处报错)
func (r *bookRepository) FindByIDWithAuthor(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{})

	// 关键词搜索(搜索标题、ISBN)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR isbn LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 排序
	switch params.SortBy {
	case "title_asc":
		query = query.Order("title ASC")
	case "created_at_desc":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at DESC") // 默认按入藏时间降序
	}

	// 分页
	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	if err := query.Preload("Author").Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Summary:   model.Summary,
		ISBN:      model.ISBN,
		AuthorID:  model.AuthorID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Author != nil {
		b.Author = &book.Author{
			ID:        model.Author.ID,
			Name:      model.Author.Name,
			CreatedAt: model.Author.CreatedAt,
			UpdatedAt: model.Author.UpdatedAt,
		}
	}
	return b
}
