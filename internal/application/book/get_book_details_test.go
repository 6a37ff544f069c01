package book

import (
	"context"
	"testing"

	"github.com/luocheng/library/internal/domain/book"
	"github.com/luocheng/library/internal/domain/instance"
	apperrors "github.com/luocheng/library/pkg/errors"
	"github.com/luocheng/library/pkg/metrics"
)

func init() {
	metrics.InitMetrics()
}

// stubBookRepo 图书仓储测试替身
type stubBookRepo struct {
	book  *book.Book
	err   error
	calls int
}

func (s *stubBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }

func (s *stubBookRepo) FindByIDWithAuthor(ctx context.Context, id string) (*book.Book, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.book, nil
}

func (s *stubBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (s *stubBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

// stubInstanceRepo 副本仓储测试替身
type stubInstanceRepo struct {
	projections []instance.CopyProjection
	err         error
	calls       int
}

func (s *stubInstanceRepo) Create(ctx context.Context, inst *instance.BookInstance) error {
	return nil
}

func (s *stubInstanceRepo) FindByID(ctx context.Context, id string) (*instance.BookInstance, error) {
	return nil, instance.ErrCopyNotFound
}

func (s *stubInstanceRepo) Update(ctx context.Context, inst *instance.BookInstance) error {
	return nil
}

func (s *stubInstanceRepo) FindProjectionsByBook(ctx context.Context, bookID string) ([]instance.CopyProjection, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.projections, nil
}

// newUseCase 组装被测用例(缓存与熔断器关闭)
func newUseCase(bookRepo *stubBookRepo, instRepo *stubInstanceRepo) *GetBookDetailsUseCase {
	return NewGetBookDetailsUseCase(bookRepo, instRepo, nil, nil)
}

// bookWithAuthor 构造带作者的图书
func bookWithAuthor(id, title, authorName string) *book.Book {
	b := book.NewBook(id, title, "", "9787111558422", "author-1")
	b.Author = book.NewAuthor("author-1", authorName)
	return b
}

// TestGetBookDetails_EmptyID 测试空ID短路
func TestGetBookDetails_EmptyID(t *testing.T) {
	bookRepo := &stubBookRepo{}
	instRepo := &stubInstanceRepo{}
	uc := newUseCase(bookRepo, instRepo)

	_, err := uc.Execute(context.Background(), "")

	if err == nil {
		t.Fatal("空ID应该返回错误")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeBookNotFound {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeBookNotFound, apperrors.CodeOf(err))
	}
	// 空ID不应触达任何仓储
	if bookRepo.calls != 0 {
		t.Errorf("图书仓储不应被调用, 实际调用%d次", bookRepo.calls)
	}
	if instRepo.calls != 0 {
		t.Errorf("副本仓储不应被调用, 实际调用%d次", instRepo.calls)
	}
}

// TestGetBookDetails_BookNotFound 测试图书不存在
func TestGetBookDetails_BookNotFound(t *testing.T) {
	bookRepo := &stubBookRepo{err: book.ErrBookNotFound}
	instRepo := &stubInstanceRepo{}
	uc := newUseCase(bookRepo, instRepo)

	_, err := uc.Execute(context.Background(), "no-such-book")

	if apperrors.CodeOf(err) != apperrors.ErrCodeBookNotFound {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeBookNotFound, apperrors.CodeOf(err))
	}
	// 图书不存在时不应继续查副本
	if instRepo.calls != 0 {
		t.Errorf("副本仓储不应被调用, 实际调用%d次", instRepo.calls)
	}
}

// TestGetBookDetails_BookRepoFailure 测试图书查询故障
func TestGetBookDetails_BookRepoFailure(t *testing.T) {
	bookRepo := &stubBookRepo{err: apperrors.Wrap(context.DeadlineExceeded, "查询图书失败")}
	instRepo := &stubInstanceRepo{}
	uc := newUseCase(bookRepo, instRepo)

	_, err := uc.Execute(context.Background(), "12345")

	if err == nil {
		t.Fatal("仓储故障应该返回错误")
	}
	if apperrors.CodeOf(err) != apperrors.ErrCodeInternal {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInternal, apperrors.CodeOf(err))
	}
}

// TestGetBookDetails_CopiesRepoFailure 测试副本查询故障
func TestGetBookDetails_CopiesRepoFailure(t *testing.T) {
	bookRepo := &stubBookRepo{book: bookWithAuthor("12345", "Mock Book Title", "Mock Author")}
	instRepo := &stubInstanceRepo{err: apperrors.Wrap(context.DeadlineExceeded, "查询副本清单失败")}
	uc := newUseCase(bookRepo, instRepo)

	_, err := uc.Execute(context.Background(), "12345")

	if apperrors.CodeOf(err) != apperrors.ErrCodeInternal {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInternal, apperrors.CodeOf(err))
	}
}

// TestGetBookDetails_CopyListMissing 测试副本清单缺失(nil)
func TestGetBookDetails_CopyListMissing(t *testing.T) {
	bookRepo := &stubBookRepo{book: bookWithAuthor("12345", "Mock Book Title", "Mock Author")}
	instRepo := &stubInstanceRepo{projections: nil}
	uc := newUseCase(bookRepo, instRepo)

	_, err := uc.Execute(context.Background(), "12345")

	if apperrors.CodeOf(err) != apperrors.ErrCodeDetailsNotFound {
		t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeDetailsNotFound, apperrors.CodeOf(err))
	}
}

// TestGetBookDetails_EmptyCopyList 测试副本清单为空([])
// 与清单缺失(nil)语义不同:空清单是正常结果
func TestGetBookDetails_EmptyCopyList(t *testing.T) {
	bookRepo := &stubBookRepo{book: bookWithAuthor("12345", "Mock Book Title", "Mock Author")}
	instRepo := &stubInstanceRepo{projections: []instance.CopyProjection{}}
	uc := newUseCase(bookRepo, instRepo)

	view, err := uc.Execute(context.Background(), "12345")
	if err != nil {
		t.Fatalf("空清单应该成功: %v", err)
	}

	if view.Title != "Mock Book Title" {
		t.Errorf("标题错误: %s", view.Title)
	}
	if view.Author == nil || *view.Author != "Mock Author" {
		t.Error("作者姓名应为Mock Author")
	}
	if view.Copies == nil {
		t.Error("副本列表应为空切片而非nil")
	}
	if len(view.Copies) != 0 {
		t.Errorf("副本列表应为空, 实际%d项", len(view.Copies))
	}
}

// TestGetBookDetails_AuthorUnresolved 测试作者关联整体缺失
// 定性为数据完整性缺陷,无论副本清单是否可得
func TestGetBookDetails_AuthorUnresolved(t *testing.T) {
	cases := []struct {
		name        string
		projections []instance.CopyProjection
	}{
		{"副本清单正常", []instance.CopyProjection{{Imprint: "First Edition", Status: "Available"}}},
		{"副本清单为空", []instance.CopyProjection{}},
		{"副本清单缺失", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := book.NewBook("12345", "Mock Book Title", "", "9787111558422", "author-1")
			// Author保持nil
			bookRepo := &stubBookRepo{book: b}
			instRepo := &stubInstanceRepo{projections: tc.projections}
			uc := newUseCase(bookRepo, instRepo)

			_, err := uc.Execute(context.Background(), "12345")

			if err == nil {
				t.Fatal("作者关联缺失应该返回错误")
			}
			if apperrors.CodeOf(err) != apperrors.ErrCodeDataCorrupted {
				t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeDataCorrupted, apperrors.CodeOf(err))
			}
		})
	}
}

// TestGetBookDetails_AuthorNameMissing 测试作者存在但姓名为空
// 视图中author字段消失,不是错误
func TestGetBookDetails_AuthorNameMissing(t *testing.T) {
	bookRepo := &stubBookRepo{book: bookWithAuthor("12345", "Mock Book Title", "")}
	instRepo := &stubInstanceRepo{projections: []instance.CopyProjection{
		{Imprint: "First Edition", Status: "Available"},
	}}
	uc := newUseCase(bookRepo, instRepo)

	view, err := uc.Execute(context.Background(), "12345")
	if err != nil {
		t.Fatalf("作者姓名缺失应该成功: %v", err)
	}

	if view.Author != nil {
		t.Errorf("作者字段应缺失, 实际为%q", *view.Author)
	}
	if len(view.Copies) != 1 {
		t.Errorf("副本数应为1, 实际%d", len(view.Copies))
	}
}

// TestGetBookDetails_FullScenario 测试完整成功场景
func TestGetBookDetails_FullScenario(t *testing.T) {
	bookRepo := &stubBookRepo{book: bookWithAuthor("12345", "Mock Book Title", "Mock Author")}
	instRepo := &stubInstanceRepo{projections: []instance.CopyProjection{
		{Imprint: "First Edition", Status: "Available"},
		{Imprint: "Second Edition", Status: "Checked Out"},
	}}
	uc := newUseCase(bookRepo, instRepo)

	view, err := uc.Execute(context.Background(), "12345")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}

	if view.Title != "Mock Book Title" {
		t.Errorf("标题错误: %s", view.Title)
	}
	if view.Author == nil || *view.Author != "Mock Author" {
		t.Error("作者姓名应为Mock Author")
	}
	if len(view.Copies) != 2 {
		t.Fatalf("副本数应为2, 实际%d", len(view.Copies))
	}
	if view.Copies[0].Imprint != "First Edition" || view.Copies[0].Status != "Available" {
		t.Errorf("第一个副本错误: %+v", view.Copies[0])
	}
	if view.Copies[1].Imprint != "Second Edition" || view.Copies[1].Status != "Checked Out" {
		t.Errorf("第二个副本错误: %+v", view.Copies[1])
	}

	// 两次读取各发生一次
	if bookRepo.calls != 1 || instRepo.calls != 1 {
		t.Errorf("仓储调用次数错误: book=%d, instance=%d", bookRepo.calls, instRepo.calls)
	}
}
