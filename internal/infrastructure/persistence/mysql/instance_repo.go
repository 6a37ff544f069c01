package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/luocheng/library/internal/domain/instance"
	apperrors "github.com/luocheng/library/pkg/errors"
)

// instanceRepository 馆藏副本仓储实现(MySQL)
type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository 创建副本仓储
func NewInstanceRepository(db *gorm.DB) instance.Repository {
	return &instanceRepository{db: db}
}

// Create 入库副本
func (r *instanceRepository) Create(ctx context.Context, inst *instance.BookInstance) error {
	model := toInstanceModel(inst)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建副本失败")
	}

	inst.CreatedAt = model.CreatedAt
	inst.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找副本
func (r *instanceRepository) FindByID(ctx context.Context, id string) (*instance.BookInstance, error) {
	var model BookInstanceModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, instance.ErrCopyNotFound
		}
		return nil, apperrors.Wrap(err, "查询副本失败")
	}

	return toInstanceEntity(&model), nil
}

// Update 保存副本状态变更
func (r *instanceRepository) Update(ctx context.Context, inst *instance.BookInstance) error {
	model := toInstanceModel(inst)

	result := r.db.WithContext(ctx).Model(&BookInstanceModel{}).
		Where("id = ?", inst.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"due_back":   model.DueBack,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新副本失败")
	}
	if result.RowsAffected == 0 {
		return instance.ErrCopyNotFound
	}

	return nil
}

// FindProjectionsByBook 查询某图书全部副本的展示投影
// 设计说明:
// 1. Select只取imprint、status两列,避免整行扫描
// 2. 查询出错时返回nil切片(清单不可得),由上层定性为详情缺失
// 3. 图书没有副本时返回空切片,与nil语义区分
func (r *instanceRepository) FindProjectionsByBook(ctx context.Context, bookID string) ([]instance.CopyProjection, error) {
	var rows []BookInstanceModel
	err := r.db.WithContext(ctx).
		Select("imprint", "status").
		Where("book_id = ?", bookID).
		Order("created_at ASC").
		Find(&rows).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "查询副本清单失败")
	}

	projections := make([]instance.CopyProjection, len(rows))
	for i, row := range rows {
		projections[i] = instance.CopyProjection{
			Imprint: row.Imprint,
			Status:  row.Status,
		}
	}
	return projections, nil
}

// toInstanceModel 领域实体 → GORM模型
func toInstanceModel(inst *instance.BookInstance) *BookInstanceModel {
	return &BookInstanceModel{
		ID:        inst.ID,
		BookID:    inst.BookID,
		Imprint:   inst.Imprint,
		Status:    string(inst.Status),
		DueBack:   inst.DueBack,
		CreatedAt: inst.CreatedAt,
		UpdatedAt: inst.UpdatedAt,
	}
}

// toInstanceEntity GORM模型 → 领域实体
func toInstanceEntity(model *BookInstanceModel) *instance.BookInstance {
	return &instance.BookInstance{
		ID:        model.ID,
		BookID:    model.BookID,
		Imprint:   model.Imprint,
		Status:    instance.Status(model.Status),
		DueBack:   model.DueBack,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
