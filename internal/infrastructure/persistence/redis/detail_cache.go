package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/luocheng/library/pkg/errors"
)

// DetailCache 图书详情缓存
// 设计说明：
// 1. 缓存详情接口的成功响应（JSON序列化后的视图模型）
// 2. Key设计：detail:{book_id}
// 3. 只缓存成功结果，404/500不缓存（避免缓存污染）
// 4. 副本状态流转、图书变更时调用Invalidate删除缓存
type DetailCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDetailCache 创建详情缓存
func NewDetailCache(client *redis.Client, ttl time.Duration) *DetailCache {
	return &DetailCache{client: client, ttl: ttl}
}

// Get 读取缓存的详情视图
// 缓存未命中返回(false, nil)，dest保持零值
func (c *DetailCache) Get(ctx context.Context, bookID string, dest interface{}) (bool, error) {
	key := detailKey(bookID)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, apperrors.Wrap(err, "读取详情缓存失败")
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// 缓存内容损坏时当作未命中,顺手删除脏数据
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}

	return true, nil
}

// Set 写入详情视图缓存
func (c *DetailCache) Set(ctx context.Context, bookID string, view interface{}) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return apperrors.Wrap(err, "序列化详情缓存失败")
	}

	if err := c.client.Set(ctx, detailKey(bookID), raw, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入详情缓存失败")
	}

	return nil
}

// Invalidate 删除详情缓存
func (c *DetailCache) Invalidate(ctx context.Context, bookID string) error {
	if err := c.client.Del(ctx, detailKey(bookID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除详情缓存失败")
	}
	return nil
}

// detailKey 详情缓存Key
func detailKey(bookID string) string {
	return fmt.Sprintf("detail:%s", bookID)
}
