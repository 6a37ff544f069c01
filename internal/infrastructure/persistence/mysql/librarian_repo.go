package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/luocheng/library/internal/domain/librarian"
	apperrors "github.com/luocheng/library/pkg/errors"
)

// librarianRepository 馆员仓储实现(MySQL)
type librarianRepository struct {
	db *gorm.DB
}

// NewLibrarianRepository 创建馆员仓储
func NewLibrarianRepository(db *gorm.DB) librarian.Repository {
	return &librarianRepository{db: db}
}

// Create 创建馆员
// 邮箱唯一性由UNIQUE索引保证,重复时转换为业务错误
func (r *librarianRepository) Create(ctx context.Context, lib *librarian.Librarian) error {
	model := toLibrarianModel(lib)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建馆员失败")
	}

	lib.CreatedAt = model.CreatedAt
	lib.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找馆员
func (r *librarianRepository) FindByID(ctx context.Context, id string) (*librarian.Librarian, error) {
	var model LibrarianModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLibrarianNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆员失败")
	}

	return toLibrarianEntity(&model), nil
}

// FindByEmail 根据邮箱查找馆员
func (r *librarianRepository) FindByEmail(ctx context.Context, email string) (*librarian.Librarian, error) {
	var model LibrarianModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLibrarianNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆员失败")
	}

	return toLibrarianEntity(&model), nil
}

// Update 更新馆员信息
func (r *librarianRepository) Update(ctx context.Context, lib *librarian.Librarian) error {
	model := toLibrarianModel(lib)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新馆员失败")
	}

	lib.UpdatedAt = model.UpdatedAt
	return nil
}

// toLibrarianModel 领域实体 → GORM模型
func toLibrarianModel(lib *librarian.Librarian) *LibrarianModel {
	return &LibrarianModel{
		ID:        lib.ID,
		Email:     lib.Email,
		Password:  lib.Password,
		Nickname:  lib.Nickname,
		CreatedAt: lib.CreatedAt,
		UpdatedAt: lib.UpdatedAt,
	}
}

// toLibrarianEntity GORM模型 → 领域实体
func toLibrarianEntity(model *LibrarianModel) *librarian.Librarian {
	return &librarian.Librarian{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		Nickname:  model.Nickname,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
