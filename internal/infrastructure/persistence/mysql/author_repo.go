package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/luocheng/library/internal/domain/book"
	apperrors "github.com/luocheng/library/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) book.AuthorRepository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *book.Author) error {
	model := &AuthorModel{
		ID:   a.ID,
		Name: a.Name,
	}

	// 参与上层事务(入藏时与图书写入同事务)
	db := dbFromContext(ctx, r.db)
	if err := db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByName 根据姓名查找作者
func (r *authorRepository) FindByName(ctx context.Context, name string) (*book.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return &book.Author{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
