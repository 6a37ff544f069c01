package dto

// AddBookRequest HTTP入藏请求
// validator tag说明:
// - required: 必填字段
// - min/max: 长度范围校验
type AddBookRequest struct {
	Title      string `json:"title" binding:"required,max=200" example:"The Go Programming Language"`
	Summary    string `json:"summary" binding:"max=5000" example:"The authoritative resource to writing clear and idiomatic Go"`
	ISBN       string `json:"isbn" binding:"required,max=20" example:"9780134190440"`
	AuthorName string `json:"author_name" binding:"required,max=100" example:"Alan A. A. Donovan"`
}

// BookResponse HTTP图书响应
// 用于入藏成功后的返回
type BookResponse struct {
	ID        string `json:"id" example:"0d9b2b9e-3b7c-4f3a-9a46-6f9e8c2d1a11"`
	Title     string `json:"title" example:"The Go Programming Language"`
	Summary   string `json:"summary" example:"The authoritative resource to writing clear and idiomatic Go"`
	ISBN      string `json:"isbn" example:"9780134190440"`
	Author    string `json:"author" example:"Alan A. A. Donovan"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=title_asc created_at_desc" example:"created_at_desc"`
}

// AddInstanceRequest HTTP副本入库请求
type AddInstanceRequest struct {
	BookID  string `json:"book_id" binding:"required" example:"0d9b2b9e-3b7c-4f3a-9a46-6f9e8c2d1a11"`
	Imprint string `json:"imprint" binding:"required,max=200" example:"First Edition, 2015"`
}

// UpdateInstanceStatusRequest HTTP副本状态流转请求
// Action取值: loan | return | reserve | maintenance | available
type UpdateInstanceStatusRequest struct {
	Action  string `json:"action" binding:"required,oneof=loan return reserve maintenance available" example:"loan"`
	DueBack string `json:"due_back" binding:"omitempty" example:"2024-02-01"` // loan/reserve时必填,格式YYYY-MM-DD
}
