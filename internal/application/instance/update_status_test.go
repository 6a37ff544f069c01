package instance

import (
	"context"
	"testing"
	"time"

	"github.com/luocheng/library/internal/domain/instance"
	apperrors "github.com/luocheng/library/pkg/errors"
	"github.com/luocheng/library/pkg/metrics"
)

func init() {
	metrics.InitMetrics()
}

// memInstanceRepo 副本仓储内存实现(测试替身)
type memInstanceRepo struct {
	instances map[string]*instance.BookInstance
}

func newMemInstanceRepo() *memInstanceRepo {
	return &memInstanceRepo{instances: make(map[string]*instance.BookInstance)}
}

func (r *memInstanceRepo) Create(ctx context.Context, inst *instance.BookInstance) error {
	r.instances[inst.ID] = inst
	return nil
}

func (r *memInstanceRepo) FindByID(ctx context.Context, id string) (*instance.BookInstance, error) {
	inst, ok := r.instances[id]
	if !ok {
		return nil, instance.ErrCopyNotFound
	}
	copied := *inst
	return &copied, nil
}

func (r *memInstanceRepo) Update(ctx context.Context, inst *instance.BookInstance) error {
	if _, ok := r.instances[inst.ID]; !ok {
		return instance.ErrCopyNotFound
	}
	copied := *inst
	r.instances[inst.ID] = &copied
	return nil
}

func (r *memInstanceRepo) FindProjectionsByBook(ctx context.Context, bookID string) ([]instance.CopyProjection, error) {
	projections := make([]instance.CopyProjection, 0)
	for _, inst := range r.instances {
		if inst.BookID == bookID {
			projections = append(projections, instance.CopyProjection{
				Imprint: inst.Imprint,
				Status:  string(inst.Status),
			})
		}
	}
	return projections, nil
}

// TestUpdateStatus_Loan 测试借出流转
func TestUpdateStatus_Loan(t *testing.T) {
	repo := newMemInstanceRepo()
	repo.instances["inst-1"] = instance.NewBookInstance("inst-1", "book-1", "First Edition")
	uc := NewUpdateStatusUseCase(repo, nil, nil)

	due := time.Now().Add(14 * 24 * time.Hour)
	resp, err := uc.Execute(context.Background(), UpdateStatusRequest{
		InstanceID: "inst-1",
		Action:     "loan",
		DueBack:    &due,
	})
	if err != nil {
		t.Fatalf("借出失败: %v", err)
	}

	if resp.Status != string(instance.StatusOnLoan) {
		t.Errorf("状态应为%s, 实际为%s", instance.StatusOnLoan, resp.Status)
	}
	if resp.DueBack == "" {
		t.Error("借出后应返回应还日期")
	}

	// 仓储中的状态已持久化
	saved, _ := repo.FindByID(context.Background(), "inst-1")
	if saved.Status != instance.StatusOnLoan {
		t.Errorf("持久化状态应为%s, 实际为%s", instance.StatusOnLoan, saved.Status)
	}
}

// TestUpdateStatus_LoanWithoutDueBack 测试借出缺少应还日期
func TestUpdateStatus_LoanWithoutDueBack(t *testing.T) {
	repo := newMemInstanceRepo()
	repo.instances["inst-1"] = instance.NewBookInstance("inst-1", "book-1", "First Edition")
	uc := NewUpdateStatusUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{
		InstanceID: "inst-1",
		Action:     "loan",
	})

	if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidParams {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
	}
}

// TestUpdateStatus_InvalidTransition 测试非法流转
func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := newMemInstanceRepo()
	repo.instances["inst-1"] = instance.NewBookInstance("inst-1", "book-1", "First Edition")
	uc := NewUpdateStatusUseCase(repo, nil, nil)

	// 在架副本直接归还是非法流转
	_, err := uc.Execute(context.Background(), UpdateStatusRequest{
		InstanceID: "inst-1",
		Action:     "return",
	})

	if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidTransition {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInvalidTransition, apperrors.CodeOf(err))
	}
}

// TestUpdateStatus_NotFound 测试副本不存在
func TestUpdateStatus_NotFound(t *testing.T) {
	uc := NewUpdateStatusUseCase(newMemInstanceRepo(), nil, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{
		InstanceID: "no-such-copy",
		Action:     "return",
	})

	if apperrors.CodeOf(err) != apperrors.ErrCodeCopyNotFound {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeCopyNotFound, apperrors.CodeOf(err))
	}
}

// TestUpdateStatus_UnknownAction 测试未知动作
func TestUpdateStatus_UnknownAction(t *testing.T) {
	repo := newMemInstanceRepo()
	repo.instances["inst-1"] = instance.NewBookInstance("inst-1", "book-1", "First Edition")
	uc := NewUpdateStatusUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{
		InstanceID: "inst-1",
		Action:     "destroy",
	})

	if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidParams {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
	}
}

// TestUpdateStatus_FullCycle 测试完整借阅周期
func TestUpdateStatus_FullCycle(t *testing.T) {
	repo := newMemInstanceRepo()
	repo.instances["inst-1"] = instance.NewBookInstance("inst-1", "book-1", "First Edition")
	uc := NewUpdateStatusUseCase(repo, nil, nil)
	ctx := context.Background()

	due := time.Now().Add(14 * 24 * time.Hour)
	steps := []UpdateStatusRequest{
		{InstanceID: "inst-1", Action: "reserve", DueBack: &due},
		{InstanceID: "inst-1", Action: "loan", DueBack: &due},
		{InstanceID: "inst-1", Action: "return"},
		{InstanceID: "inst-1", Action: "maintenance"},
		{InstanceID: "inst-1", Action: "available"},
	}
	want := []instance.Status{
		instance.StatusReserved,
		instance.StatusOnLoan,
		instance.StatusAvailable,
		instance.StatusMaintenance,
		instance.StatusAvailable,
	}

	for i, step := range steps {
		resp, err := uc.Execute(ctx, step)
		if err != nil {
			t.Fatalf("步骤%d(%s)失败: %v", i, step.Action, err)
		}
		if resp.Status != string(want[i]) {
			t.Errorf("步骤%d(%s)后状态应为%s, 实际为%s", i, step.Action, want[i], resp.Status)
		}
	}
}
