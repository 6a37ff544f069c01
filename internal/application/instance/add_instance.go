package instance

import (
	"context"
	"log"

	"github.com/luocheng/library/internal/domain/book"
	"github.com/luocheng/library/internal/domain/instance"
	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
)

// AddInstanceUseCase 副本入库用例
// 设计说明:
// 1. 入库前校验所属图书存在(引用完整性在应用层把关)
// 2. 入库成功后失效详情缓存(详情页副本清单已变化)
type AddInstanceUseCase struct {
	instanceService *instance.Service
	bookRepo        book.Repository
	cache           *redis.DetailCache // 可为nil
}

// NewAddInstanceUseCase 创建入库用例
func NewAddInstanceUseCase(
	instanceService *instance.Service,
	bookRepo book.Repository,
	cache *redis.DetailCache,
) *AddInstanceUseCase {
	return &AddInstanceUseCase{
		instanceService: instanceService,
		bookRepo:        bookRepo,
		cache:           cache,
	}
}

// AddInstanceRequest 入库请求DTO
type AddInstanceRequest struct {
	BookID  string // 所属图书ID
	Imprint string // 版次信息
}

// AddInstanceResponse 入库响应DTO
type AddInstanceResponse struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	Imprint   string `json:"imprint"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行入库
func (uc *AddInstanceUseCase) Execute(ctx context.Context, req AddInstanceRequest) (*AddInstanceResponse, error) {
	// 校验所属图书存在
	if _, err := uc.bookRepo.FindByIDWithAuthor(ctx, req.BookID); err != nil {
		return nil, err
	}

	inst, err := uc.instanceService.AddInstance(ctx, req.BookID, req.Imprint)
	if err != nil {
		return nil, err
	}

	// 失效详情缓存
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.BookID); err != nil {
			log.Printf("失效详情缓存失败: %v", err)
		}
	}

	return &AddInstanceResponse{
		ID:        inst.ID,
		BookID:    inst.BookID,
		Imprint:   inst.Imprint,
		Status:    string(inst.Status),
		CreatedAt: inst.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
