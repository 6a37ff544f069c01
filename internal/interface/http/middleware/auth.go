package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
	"github.com/luocheng/library/pkg/jwt"
	"github.com/luocheng/library/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 验证Token有效性
// 3. 检查Token黑名单
// 4. 将馆员信息注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.POST("/books", handler.AddBook)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 2. 检查Token是否在黑名单中（馆员已登出或Token被强制失效）
		// sessionStore为nil时跳过(如单测环境未启用Redis)
		if m.sessionStore != nil {
			isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				response.ErrorWithCode(c, 50000, "验证Token失败")
				c.Abort()
				return
			}
			if isBlacklisted {
				response.ErrorWithCode(c, 40102, "Token已失效，请重新登录")
				c.Abort()
				return
			}
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 将馆员信息注入到Context（后续Handler可以使用）
		c.Set("librarian_id", claims.LibrarianID)
		c.Set("email", claims.Email)
		c.Set("nickname", claims.Nickname)
		c.Set("access_token", tokenString)

		c.Next()
	}
}

// GetLibrarianID 从Context获取当前登录馆员ID
// 未登录时返回空字符串
func GetLibrarianID(c *gin.Context) string {
	if id, exists := c.Get("librarian_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// GetEmail 从Context获取当前登录馆员邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get("email"); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// GetAccessToken 从Context获取当前请求的Access Token(登出时用)
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if s, ok := token.(string); ok {
			return s
		}
	}
	return ""
}

// MustGetLibrarianID 从Context获取馆员ID（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetLibrarianID(c *gin.Context) string {
	id := GetLibrarianID(c)
	if id == "" {
		panic("librarian_id not found in context")
	}
	return id
}
