package book

import (
	"context"

	"github.com/luocheng/library/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持分页、搜索、排序
// 2. 列表项不返回summary字段(减少数据传输量)
type ListBooksUseCase struct {
	bookService *book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService *book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、ISBN)
	SortBy   string // 排序方式(title_asc, created_at_desc)
}

// BookListItem 列表项DTO(不含summary)
type BookListItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ISBN      string `json:"isbn"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	}

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]BookListItem, len(books))
	for i, b := range books {
		item := BookListItem{
			ID:        b.ID,
			Title:     b.Title,
			ISBN:      b.ISBN,
			CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		// 作者行缺失的图书在列表中author字段留空
		if name, ok := b.AuthorName(); ok {
			item.Author = name
		}
		list[i] = item
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
