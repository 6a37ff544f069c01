package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是馆藏图书聚合的根实体
// 2. ID是不透明的字符串标识(入藏时生成,外部系统也可能导入自带ID)
// 3. AuthorID是作者关联;Author字段仅在"详情读取"时解析填充
// 4. Author可能为nil:历史数据导入时作者行丢失属于数据完整性缺陷,
//    由上层按错误处理,实体层不做掩盖
type Book struct {
	ID        string
	Title     string  // 书名
	Summary   string  // 简介
	ISBN      string  // ISBN号(国际标准书号)
	AuthorID  string  // 作者ID(外键)
	Author    *Author // 读取时解析的作者关联(未解析或缺失时为nil)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author 作者实体
// 说明:Name可能为空串(作者行存在但姓名未录入),
// 详情视图对这种情况省略author字段,不视为错误
type Author struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
// 参数说明:
// - id: 图书标识(调用方生成,通常为uuid)
// - title: 书名(需调用方先校验非空)
// - summary: 简介
// - isbn: ISBN号
// - authorID: 作者ID
func NewBook(id, title, summary, isbn, authorID string) *Book {
	now := time.Now()
	return &Book{
		ID:        id,
		Title:     title,
		Summary:   summary,
		ISBN:      isbn,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewAuthor 创建新作者(工厂方法)
func NewAuthor(id, name string) *Author {
	now := time.Now()
	return &Author{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasAuthor 作者关联是否已解析
func (b *Book) HasAuthor() bool {
	return b.Author != nil
}

// AuthorName 返回已解析作者的姓名
// 返回值:(姓名, 是否有姓名可用)
// 作者关联未解析、或作者姓名未录入时第二个返回值为false
func (b *Book) AuthorName() (string, bool) {
	if b.Author == nil || b.Author.Name == "" {
		return "", false
	}
	return b.Author.Name, true
}

// UpdateInfo 更新图书基本信息
func (b *Book) UpdateInfo(title, summary string) {
	if title != "" {
		b.Title = title
	}
	if summary != "" {
		b.Summary = summary
	}
	b.UpdatedAt = time.Now()
}
