package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luocheng/library/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// 设计说明:
// 1. path标签使用路由模板(c.FullPath())而非原始URL,避免标签基数爆炸
// 2. 未匹配到路由的请求(404)统一记为"unmatched"
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		labels := map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, labels, time.Since(start).Seconds())

		labels["status"] = strconv.Itoa(c.Writer.Status())
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, labels)
	}
}
