package book

import (
	"context"
	"log"
	"time"

	"github.com/luocheng/library/internal/domain/book"
	"github.com/luocheng/library/internal/domain/instance"
	"github.com/luocheng/library/internal/infrastructure/persistence/redis"
	"github.com/luocheng/library/pkg/circuitbreaker"
	apperrors "github.com/luocheng/library/pkg/errors"
	"github.com/luocheng/library/pkg/metrics"
)

// GetBookDetailsUseCase 图书详情用例
// 设计说明:
// 1. 两次仓储读取严格串行:先查图书(解析作者),成功后再查副本清单
// 2. 空ID在任何仓储调用之前短路为"图书不存在"
// 3. 作者关联整体缺失定性为数据完整性缺陷(对外表现与上游故障一致)
// 4. 详情缓存可选(cache为nil时每次回源),经熔断器保护,缓存故障不影响主链路
type GetBookDetailsUseCase struct {
	bookRepo     book.Repository
	instanceRepo instance.Repository
	cache        *redis.DetailCache            // 可为nil(缓存关闭)
	breaker      *circuitbreaker.CircuitBreaker // 保护缓存读写,可为nil
}

// NewGetBookDetailsUseCase 创建详情用例
func NewGetBookDetailsUseCase(
	bookRepo book.Repository,
	instanceRepo instance.Repository,
	cache *redis.DetailCache,
	breaker *circuitbreaker.CircuitBreaker,
) *GetBookDetailsUseCase {
	return &GetBookDetailsUseCase{
		bookRepo:     bookRepo,
		instanceRepo: instanceRepo,
		cache:        cache,
		breaker:      breaker,
	}
}

// CopyView 副本展示项
type CopyView struct {
	Imprint string `json:"imprint"`
	Status  string `json:"status"`
}

// BookDetailsResponse 详情视图模型
// Author使用指针+omitempty:作者姓名无法解析时整个字段从JSON中消失
type BookDetailsResponse struct {
	Title  string     `json:"title"`
	Author *string    `json:"author,omitempty"`
	Copies []CopyView `json:"copies"`
}

// Execute 执行详情查询
// 错误约定(由HTTP层翻译为对外响应):
// - ErrCodeBookNotFound: 图书不存在(含空ID短路)
// - ErrCodeDetailsNotFound: 图书存在但副本清单缺失
// - 其余错误码: 上游故障或数据完整性缺陷
func (uc *GetBookDetailsUseCase) Execute(ctx context.Context, bookID string) (*BookDetailsResponse, error) {
	start := time.Now()
	view, err := uc.execute(ctx, bookID)
	metrics.ObserveHistogram(metrics.BookDetailLookupDuration, time.Since(start).Seconds())
	metrics.IncCounterVec(metrics.BookDetailLookupsTotal, map[string]string{
		"result": lookupResult(err),
	})
	return view, err
}

func (uc *GetBookDetailsUseCase) execute(ctx context.Context, bookID string) (*BookDetailsResponse, error) {
	// 1. 空ID短路,不触达任何仓储
	if bookID == "" {
		return nil, book.ErrBookNotFound
	}

	// 2. 缓存命中则直接返回(只缓存成功结果,不影响错误路径)
	if view, ok := uc.cacheGet(ctx, bookID); ok {
		return view, nil
	}

	// 3. 查图书并解析作者(第一次读取)
	b, err := uc.bookRepo.FindByIDWithAuthor(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// 4. 查副本清单投影(第二次读取,图书查询完成后才发起)
	copies, err := uc.instanceRepo.FindProjectionsByBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	// 5. 作者关联整体缺失 → 数据完整性缺陷
	// 注意:此判定优先于副本清单缺失的判定
	if !b.HasAuthor() {
		return nil, book.ErrAuthorUnresolved
	}

	// 6. 副本清单缺失(nil)与清单为空([])语义不同:前者报错,后者正常
	if copies == nil {
		return nil, instance.ErrCopyListMissing
	}

	// 7. 组装视图模型
	view := &BookDetailsResponse{
		Title:  b.Title,
		Copies: make([]CopyView, len(copies)),
	}
	if name, ok := b.AuthorName(); ok {
		view.Author = &name
	}
	for i, c := range copies {
		view.Copies[i] = CopyView{Imprint: c.Imprint, Status: c.Status}
	}

	uc.cacheSet(ctx, bookID, view)
	return view, nil
}

// cacheGet 经熔断器读取详情缓存
// 缓存层任何故障都降级为未命中,不影响主链路
func (uc *GetBookDetailsUseCase) cacheGet(ctx context.Context, bookID string) (*BookDetailsResponse, bool) {
	if uc.cache == nil {
		return nil, false
	}

	var view BookDetailsResponse
	var hit bool
	err := uc.executeGuarded(func() error {
		var err error
		hit, err = uc.cache.Get(ctx, bookID, &view)
		return err
	})
	if err != nil {
		result := "error"
		if err == circuitbreaker.ErrOpenState {
			result = "rejected"
		}
		metrics.IncCounterVec(metrics.DetailCacheRequestsTotal, map[string]string{"result": result})
		log.Printf("详情缓存读取失败(已降级回源): %v", err)
		return nil, false
	}

	if hit {
		metrics.IncCounterVec(metrics.DetailCacheRequestsTotal, map[string]string{"result": "hit"})
		return &view, true
	}
	metrics.IncCounterVec(metrics.DetailCacheRequestsTotal, map[string]string{"result": "miss"})
	return nil, false
}

// cacheSet 经熔断器写入详情缓存,失败只记日志
func (uc *GetBookDetailsUseCase) cacheSet(ctx context.Context, bookID string, view *BookDetailsResponse) {
	if uc.cache == nil {
		return
	}

	if err := uc.executeGuarded(func() error {
		return uc.cache.Set(ctx, bookID, view)
	}); err != nil {
		log.Printf("详情缓存写入失败: %v", err)
	}
}

// executeGuarded 经熔断器执行缓存操作(breaker为nil时直接执行)
func (uc *GetBookDetailsUseCase) executeGuarded(fn func() error) error {
	if uc.breaker == nil {
		return fn()
	}
	return uc.breaker.Execute(fn)
}

// lookupResult 将错误翻译为指标标签
func lookupResult(err error) string {
	if err == nil {
		return "ok"
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeBookNotFound:
		return "not_found"
	case apperrors.ErrCodeDetailsNotFound:
		return "details_missing"
	default:
		return "error"
	}
}
