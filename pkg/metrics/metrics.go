// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类：
// - **Counter（计数器）**：只增不减的累计值（请求总数、缓存命中数）
// - **Gauge（仪表盘）**：可增可减的瞬时值（正在处理的请求数）
// - **Histogram（直方图）**：观测值的分布（请求耗时，自动计算P50/P90/P99）
//
// 命名规范：
// - Counter以`_total`结尾（book_detail_lookups_total）
// - Histogram以单位结尾（book_detail_lookup_duration_seconds）
// - 避免高基数标签：不要用book_id做标签，用result/status等有限值
//
// 使用方式：
//
//	metrics.InitMetrics()
//	http.Handle("/metrics", promhttp.Handler())
//
//	// 业务代码中：
//	metrics.IncCounterVec(metrics.BookDetailLookupsTotal, map[string]string{"result": "ok"})
//	metrics.ObserveHistogram(metrics.BookDetailLookupDuration, time.Since(start).Seconds())
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/books/:id）、status（200/404/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 图书详情业务指标

	// BookDetailLookupsTotal 图书详情查询总数（Counter）
	// 标签：result（ok/not_found/details_missing/error）
	BookDetailLookupsTotal *prometheus.CounterVec

	// BookDetailLookupDuration 图书详情查询耗时（Histogram）
	BookDetailLookupDuration prometheus.Histogram

	// DetailCacheRequestsTotal 详情缓存请求总数（Counter）
	// 标签：result（hit/miss/error/rejected）
	// rejected表示被熔断器拒绝，直接回源数据库
	DetailCacheRequestsTotal *prometheus.CounterVec

	// 馆藏副本指标

	// CopyStatusChangesTotal 副本状态流转总数（Counter）
	// 标签：to（Available/On loan/Reserved/Maintenance）
	CopyStatusChangesTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 图书详情指标
	BookDetailLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_detail_lookups_total",
			Help: "图书详情查询总数",
		},
		[]string{"result"}, // ok/not_found/details_missing/error
	)

	BookDetailLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "book_detail_lookup_duration_seconds",
			Help: "图书详情查询耗时（秒）",
			// 详情查询是两次串行读（图书+副本清单），通常在百毫秒内
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	DetailCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detail_cache_requests_total",
			Help: "详情缓存请求总数",
		},
		[]string{"result"}, // hit/miss/error/rejected
	)

	// 副本指标
	CopyStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copy_status_changes_total",
			Help: "副本状态流转总数",
		},
		[]string{"to"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
