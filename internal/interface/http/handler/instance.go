package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appinstance "github.com/luocheng/library/internal/application/instance"
	"github.com/luocheng/library/internal/interface/http/dto"
	"github.com/luocheng/library/pkg/response"
)

// InstanceHandler 馆藏副本HTTP处理器
type InstanceHandler struct {
	addInstanceUseCase  *appinstance.AddInstanceUseCase
	updateStatusUseCase *appinstance.UpdateStatusUseCase
}

// NewInstanceHandler 创建副本处理器
func NewInstanceHandler(
	addInstanceUseCase *appinstance.AddInstanceUseCase,
	updateStatusUseCase *appinstance.UpdateStatusUseCase,
) *InstanceHandler {
	return &InstanceHandler{
		addInstanceUseCase:  addInstanceUseCase,
		updateStatusUseCase: updateStatusUseCase,
	}
}

// AddInstance 副本入库
// @Summary      副本入库
// @Description  为已入藏的图书登记一个新的物理副本
// @Tags         馆藏副本
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddInstanceRequest true "副本信息"
// @Success      200 {object} response.Response{data=appinstance.AddInstanceResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/instances [post]
func (h *InstanceHandler) AddInstance(c *gin.Context) {
	var req dto.AddInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.addInstanceUseCase.Execute(c.Request.Context(), appinstance.AddInstanceRequest{
		BookID:  req.BookID,
		Imprint: req.Imprint,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus 副本状态流转
// @Summary      副本状态流转
// @Description  借出/归还/预约/送修/恢复在架
// @Tags         馆藏副本
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "副本ID"
// @Param        request body dto.UpdateInstanceStatusRequest true "流转动作"
// @Success      200 {object} response.Response{data=appinstance.UpdateStatusResponse}
// @Failure      400 {object} response.Response "参数错误或非法流转"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "副本不存在"
// @Router       /api/v1/instances/{id}/status [put]
func (h *InstanceHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateInstanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// due_back为业务日期,格式YYYY-MM-DD
	var dueBack *time.Time
	if req.DueBack != "" {
		parsed, err := time.Parse("2006-01-02", req.DueBack)
		if err != nil {
			response.ErrorWithCode(c, 40900, "应还日期格式错误(应为YYYY-MM-DD)")
			return
		}
		dueBack = &parsed
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), appinstance.UpdateStatusRequest{
		InstanceID: c.Param("id"),
		Action:     req.Action,
		DueBack:    dueBack,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
