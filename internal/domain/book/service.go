package book

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/luocheng/library/pkg/errors"
)

// isbnRegex 校验ISBN-10/ISBN-13(允许连字符)
var isbnRegex = regexp.MustCompile(`^(?:\d[\- ]?){9}[\dXx]$|^(?:\d[\- ]?){13}$`)

// Service 图书领域服务
// 封装跨实体的业务规则:ISBN唯一性、作者复用
type Service struct {
	bookRepo   Repository
	authorRepo AuthorRepository
}

// NewService 创建图书领域服务
func NewService(bookRepo Repository, authorRepo AuthorRepository) *Service {
	return &Service{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
	}
}

// AddBook 入藏新书
// 业务规则:
// 1. 标题、作者姓名不能为空
// 2. ISBN格式合法且不能重复
// 3. 同名作者复用已有记录,否则新建
func (s *Service) AddBook(ctx context.Context, title, summary, isbn, authorName string) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	authorName = strings.TrimSpace(authorName)
	if authorName == "" {
		return nil, ErrInvalidAuthorName
	}
	isbn = strings.TrimSpace(isbn)
	if !isbnRegex.MatchString(isbn) {
		return nil, ErrInvalidISBN
	}

	// 检查ISBN是否已存在
	existing, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil && errors.CodeOf(err) != errors.ErrCodeBookNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, ErrISBNDuplicate
	}

	// 复用已有同名作者,不存在则新建
	author, err := s.authorRepo.FindByName(ctx, authorName)
	if err != nil {
		if errors.CodeOf(err) != errors.ErrCodeNotFound {
			return nil, err
		}
		author = NewAuthor(uuid.NewString(), authorName)
		if err := s.authorRepo.Create(ctx, author); err != nil {
			return nil, err
		}
	}

	book := NewBook(uuid.NewString(), title, summary, isbn, author.ID)
	book.Author = author
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookWithAuthor 查询图书并解析作者关联
func (s *Service) GetBookWithAuthor(ctx context.Context, id string) (*Book, error) {
	return s.bookRepo.FindByIDWithAuthor(ctx, id)
}

// ListBooks 分页查询图书
func (s *Service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.bookRepo.List(ctx, params)
}
