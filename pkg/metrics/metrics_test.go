package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if BookDetailLookupsTotal == nil {
		t.Error("BookDetailLookupsTotal未初始化")
	}
	if DetailCacheRequestsTotal == nil {
		t.Error("DetailCacheRequestsTotal未初始化")
	}
	if BookDetailLookupDuration == nil {
		t.Error("BookDetailLookupDuration未初始化")
	}
}

// TestDetailLookupCounter 测试详情查询计数
func TestDetailLookupCounter(t *testing.T) {
	InitMetrics()

	IncCounterVec(BookDetailLookupsTotal, map[string]string{"result": "ok"})
	IncCounterVec(BookDetailLookupsTotal, map[string]string{"result": "ok"})
	IncCounterVec(BookDetailLookupsTotal, map[string]string{"result": "not_found"})

	okCount := getCounterVecValue(t, BookDetailLookupsTotal, map[string]string{"result": "ok"})
	if okCount != 2 {
		t.Errorf("详情查询成功计数错误: expected=2, got=%f", okCount)
	}

	nfCount := getCounterVecValue(t, BookDetailLookupsTotal, map[string]string{"result": "not_found"})
	if nfCount != 1 {
		t.Errorf("详情查询未命中计数错误: expected=1, got=%f", nfCount)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", v)
	}

	DecGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", v)
	}
}

// TestCircuitBreakerStateGauge 测试熔断器状态指标
func TestCircuitBreakerStateGauge(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "detail-cache"}, 1) // OPEN

	v := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "detail-cache"})
	if v != 1 {
		t.Errorf("熔断器状态指标错误: expected=1, got=%f", v)
	}
}

// TestHistogram 测试Histogram指标
func TestHistogram(t *testing.T) {
	InitMetrics()

	ObserveHistogram(BookDetailLookupDuration, 0.005)
	ObserveHistogram(BookDetailLookupDuration, 0.01)
	ObserveHistogram(BookDetailLookupDuration, 0.05)

	count := getHistogramCount(t, BookDetailLookupDuration)
	if count != 3 {
		t.Errorf("Histogram观测次数错误: expected=3, got=%d", count)
	}

	sum := getHistogramSum(t, BookDetailLookupDuration)
	expectedSum := 0.005 + 0.01 + 0.05
	if sum != expectedSum {
		t.Errorf("Histogram总和错误: expected=%f, got=%f", expectedSum, sum)
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	gauge := gaugeVec.With(labels)
	if err := gauge.(prometheus.Gauge).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取Histogram总和
func getHistogramSum(t *testing.T, histogram prometheus.Histogram) float64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleSum()
}
