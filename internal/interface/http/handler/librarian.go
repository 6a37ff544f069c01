package handler

import (
	"github.com/gin-gonic/gin"

	applibrarian "github.com/luocheng/library/internal/application/librarian"
	"github.com/luocheng/library/internal/interface/http/dto"
	"github.com/luocheng/library/internal/interface/http/middleware"
	"github.com/luocheng/library/pkg/response"
)

// LibrarianHandler 馆员HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type LibrarianHandler struct {
	registerUseCase *applibrarian.RegisterUseCase
	loginUseCase    *applibrarian.LoginUseCase
	logoutUseCase   *applibrarian.LogoutUseCase
}

// NewLibrarianHandler 创建馆员处理器
func NewLibrarianHandler(
	registerUseCase *applibrarian.RegisterUseCase,
	loginUseCase *applibrarian.LoginUseCase,
	logoutUseCase *applibrarian.LogoutUseCase,
) *LibrarianHandler {
	return &LibrarianHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 馆员注册
// @Summary      馆员注册
// @Description  创建新馆员账号
// @Tags         馆员
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.LibrarianResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/librarians/register [post]
func (h *LibrarianHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), applibrarian.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LibrarianResponse{
		ID:       result.ID,
		Email:    result.Email,
		Nickname: result.Nickname,
	})
}

// Login 馆员登录
// @Summary      馆员登录
// @Description  验证邮箱密码，返回JWT Token
// @Tags         馆员
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/librarians/login [post]
func (h *LibrarianHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), applibrarian.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		Librarian: dto.LibrarianInfo{
			ID:       result.Librarian.ID,
			Email:    result.Librarian.Email,
			Nickname: result.Librarian.Nickname,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 馆员登出
// @Summary      馆员登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         馆员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/librarians/logout [post]
func (h *LibrarianHandler) Logout(c *gin.Context) {
	librarianID := middleware.MustGetLibrarianID(c)
	accessToken := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), librarianID, accessToken); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "已登出"})
}
