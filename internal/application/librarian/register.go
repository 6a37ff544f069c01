package librarian

import (
	"context"

	"github.com/luocheng/library/internal/domain/librarian"
)

// RegisterUseCase 馆员注册用例
// 设计说明：
// 1. Application层负责用例编排，协调多个领域服务
// 2. 当前注册用例比较简单，只调用一个领域服务
// 3. 未来可能扩展：发送欢迎邮件、记录审计日志、触发事件等
type RegisterUseCase struct {
	librarianService librarian.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(librarianService librarian.Service) *RegisterUseCase {
	return &RegisterUseCase{
		librarianService: librarianService,
	}
}

// Execute 执行注册
// 返回：RegisterResponse（应用层DTO，不是领域实体）
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	lib, err := uc.librarianService.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}

	// 领域实体 → 应用层DTO，领域模型变更不影响API契约
	return &RegisterResponse{
		ID:       lib.ID,
		Email:    lib.Email,
		Nickname: lib.Nickname,
	}, nil
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// RegisterResponse 注册响应
// 说明：不返回密码字段（安全考虑）
type RegisterResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
