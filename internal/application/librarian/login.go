package librarian

import (
	"context"
	"log"
	"time"

	"github.com/luocheng/library/internal/domain/librarian"
	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
	"github.com/luocheng/library/pkg/jwt"
)

// LoginUseCase 馆员登录用例
// 设计说明：
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis(sessionStore为nil时跳过)
type LoginUseCase struct {
	librarianService librarian.Service
	jwtManager       *jwt.Manager
	sessionStore     *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	librarianService librarian.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		librarianService: librarianService,
		jwtManager:       jwtManager,
		sessionStore:     sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码（调用领域服务）
	lib, err := uc.librarianService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(lib.ID, lib.Email, lib.Nickname)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	// 会话保存失败不影响登录，只记录日志
	if uc.sessionStore != nil {
		sessionData := map[string]interface{}{
			"librarian_id": lib.ID,
			"email":        lib.Email,
			"nickname":     lib.Nickname,
			"login_at":     time.Now().Unix(),
			"ip":           req.ClientIP,
		}
		// 会话有效期 = Refresh Token有效期
		if err := uc.sessionStore.SaveSession(ctx, lib.ID, sessionData, 7*24*time.Hour); err != nil {
			log.Printf("保存登录会话失败: %v", err)
		}
	}

	return &LoginResponse{
		Librarian: LibrarianInfo{
			ID:       lib.ID,
			Email:    lib.Email,
			Nickname: lib.Nickname,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 馆员登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, librarianID, accessToken string) error {
	if uc.sessionStore == nil {
		return nil
	}

	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, librarianID); err != nil {
		return err
	}

	// 2. 将Access Token加入黑名单（防止Token在过期前继续使用）
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string // 来自HTTP层的请求IP
}

// LoginResponse 登录响应
type LoginResponse struct {
	Librarian    LibrarianInfo `json:"librarian"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"` // Access Token过期时间（秒）
}

// LibrarianInfo 馆员信息
type LibrarianInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
