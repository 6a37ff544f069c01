package book

import (
	"context"
	"log"

	"github.com/luocheng/library/internal/domain/book"
	"github.com/luocheng/library/internal/infrastructure/persistence/mysql"
	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
	"github.com/luocheng/library/pkg/metrics"
	"github.com/luocheng/library/pkg/mq"
)

// AddBookUseCase 图书入藏用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则校验由领域服务负责
// 2. 作者与图书的写入在同一事务中完成(新作者时避免悬空的作者行)
// 3. 入藏成功后发布事件(publisher为nil时跳过)
type AddBookUseCase struct {
	bookService *book.Service
	txManager   *mysql.TxManager
	cache       *redis.DetailCache // 可为nil
	publisher   *mq.Publisher      // 可为nil
}

// NewAddBookUseCase 创建入藏用例
func NewAddBookUseCase(
	bookService *book.Service,
	txManager *mysql.TxManager,
	cache *redis.DetailCache,
	publisher *mq.Publisher,
) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		cache:       cache,
		publisher:   publisher,
	}
}

// AddBookRequest 入藏请求DTO
type AddBookRequest struct {
	Title      string // 书名
	Summary    string // 内容简介
	ISBN       string // ISBN号
	AuthorName string // 作者姓名(同名作者复用)
}

// AddBookResponse 入藏响应DTO
type AddBookResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	ISBN      string `json:"isbn"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行入藏
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	var created *book.Book

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = uc.bookService.AddBook(txCtx, req.Title, req.Summary, req.ISBN, req.AuthorName)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 发布入藏事件(失败不影响入藏结果)
	if uc.publisher != nil {
		event := mq.BookCreatedEvent{
			BookID:     created.ID,
			Title:      created.Title,
			OccurredAt: created.CreatedAt.Unix(),
		}
		if err := uc.publisher.Publish("book.created", event); err != nil {
			log.Printf("发布入藏事件失败: %v", err)
		} else {
			metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
				"exchange":    uc.publisher.Exchange(),
				"routing_key": "book.created",
			})
		}
	}

	authorName, _ := created.AuthorName()
	return &AddBookResponse{
		ID:        created.ID,
		Title:     created.Title,
		Summary:   created.Summary,
		ISBN:      created.ISBN,
		Author:    authorName,
		CreatedAt: created.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
