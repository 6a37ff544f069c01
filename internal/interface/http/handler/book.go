package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/luocheng/library/internal/application/book"
	"github.com/luocheng/library/internal/interface/http/dto"
	apperrors "github.com/luocheng/library/pkg/errors"
	"github.com/luocheng/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	getBookDetailsUseCase *appbook.GetBookDetailsUseCase
	listBooksUseCase      *appbook.ListBooksUseCase
	addBookUseCase        *appbook.AddBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	getBookDetailsUseCase *appbook.GetBookDetailsUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	addBookUseCase *appbook.AddBookUseCase,
) *BookHandler {
	return &BookHandler{
		getBookDetailsUseCase: getBookDetailsUseCase,
		listBooksUseCase:      listBooksUseCase,
		addBookUseCase:        addBookUseCase,
	}
}

// GetBookDetail 图书详情
// 对外契约说明:
// 此接口不使用统一响应包装,错误时返回纯文本,成功时直接返回视图JSON,
// 是前端详情页消费的既有契约,不能变更:
// - 404 "Book {id} not found": 图书不存在(含非法ID)
// - 404 "Book details not found for book {id}": 副本清单缺失
// - 500 "Error fetching book {id}": 上游故障或作者关联缺失
// - 200 {"title":..., "author":..., "copies":[...]}: 成功(作者姓名缺失时author字段省略)
//
// @Summary      图书详情
// @Description  查询图书及其全部馆藏副本
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} appbook.BookDetailsResponse
// @Failure      404 {string} string "Book {id} not found"
// @Failure      500 {string} string "Error fetching book {id}"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	id := c.Param("id")

	view, err := h.getBookDetailsUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.ErrCodeBookNotFound:
			c.String(http.StatusNotFound, fmt.Sprintf("Book %s not found", id))
		case apperrors.ErrCodeDetailsNotFound:
			c.String(http.StatusNotFound, fmt.Sprintf("Book details not found for book %s", id))
		default:
			c.String(http.StatusInternalServerError, fmt.Sprintf("Error fetching book %s", id))
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询馆藏图书,支持搜索与排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        keyword query string false "搜索关键词(标题、ISBN)"
// @Param        sort_by query string false "排序方式" Enums(title_asc, created_at_desc)
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddBook 入藏图书
// @Summary      入藏图书
// @Description  馆员入藏新书(同名作者自动复用)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Title:      req.Title,
		Summary:    req.Summary,
		ISBN:       req.ISBN,
		AuthorName: req.AuthorName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookResponse{
		ID:        result.ID,
		Title:     result.Title,
		Summary:   result.Summary,
		ISBN:      result.ISBN,
		Author:    result.Author,
		CreatedAt: result.CreatedAt,
	})
}
