package instance

import (
	"context"
	"log"
	"time"

	"github.com/luocheng/library/internal/domain/instance"
	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/luocheng/library/pkg/errors"
	"github.com/luocheng/library/pkg/metrics"
	"github.com/luocheng/library/pkg/mq"
)

// UpdateStatusUseCase 副本状态流转用例
// 设计说明:
// 1. 状态流转规则由实体的状态机方法把关,应用层只做动作分发
// 2. 流转成功后失效详情缓存并发布事件(均为尽力而为,失败只记日志)
type UpdateStatusUseCase struct {
	instanceRepo instance.Repository
	cache        *redis.DetailCache // 可为nil
	publisher    *mq.Publisher      // 可为nil
}

// NewUpdateStatusUseCase 创建状态流转用例
func NewUpdateStatusUseCase(
	instanceRepo instance.Repository,
	cache *redis.DetailCache,
	publisher *mq.Publisher,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		instanceRepo: instanceRepo,
		cache:        cache,
		publisher:    publisher,
	}
}

// UpdateStatusRequest 状态流转请求DTO
// Action取值: loan | return | reserve | maintenance | available
type UpdateStatusRequest struct {
	InstanceID string
	Action     string
	DueBack    *time.Time // loan/reserve时必填
}

// UpdateStatusResponse 状态流转响应DTO
type UpdateStatusResponse struct {
	ID      string `json:"id"`
	BookID  string `json:"book_id"`
	Status  string `json:"status"`
	DueBack string `json:"due_back,omitempty"`
}

// Execute 执行状态流转
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	inst, err := uc.instanceRepo.FindByID(ctx, req.InstanceID)
	if err != nil {
		return nil, err
	}
	fromStatus := inst.Status

	// 动作分发到实体状态机
	switch req.Action {
	case "loan":
		if req.DueBack == nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "借出必须指定应还日期")
		}
		err = inst.Loan(*req.DueBack)
	case "return":
		err = inst.Return()
	case "reserve":
		if req.DueBack == nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "预约必须指定应还日期")
		}
		err = inst.Reserve(*req.DueBack)
	case "maintenance":
		err = inst.SendToMaintenance()
	case "available":
		err = inst.MakeAvailable()
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "未知的流转动作: "+req.Action)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.instanceRepo.Update(ctx, inst); err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.CopyStatusChangesTotal, map[string]string{
		"to": string(inst.Status),
	})

	// 失效详情缓存(详情页副本状态已变化)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, inst.BookID); err != nil {
			log.Printf("失效详情缓存失败: %v", err)
		}
	}

	// 发布状态流转事件
	if uc.publisher != nil {
		event := mq.CopyStatusChangedEvent{
			CopyID:     inst.ID,
			BookID:     inst.BookID,
			FromStatus: string(fromStatus),
			ToStatus:   string(inst.Status),
			OccurredAt: time.Now().Unix(),
		}
		if err := uc.publisher.Publish("copy.status_changed", event); err != nil {
			log.Printf("发布状态流转事件失败: %v", err)
		} else {
			metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
				"exchange":    uc.publisher.Exchange(),
				"routing_key": "copy.status_changed",
			})
		}
	}

	resp := &UpdateStatusResponse{
		ID:     inst.ID,
		BookID: inst.BookID,
		Status: string(inst.Status),
	}
	if inst.DueBack != nil {
		resp.DueBack = inst.DueBack.Format("2006-01-02")
	}
	return resp, nil
}
