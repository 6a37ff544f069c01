package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errCacheDown = errors.New("cache unavailable")

// TestCircuitBreaker_ClosedState 测试关闭状态（正常放行）
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("detail-cache", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 测试打开状态（熔断后快速失败）
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := NewCircuitBreaker("detail-cache", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	// 连续失败5次触发熔断
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errCacheDown
		})
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断后的请求应快速失败，业务函数不被调用
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断期间不应调用业务函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开状态探测恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("detail-cache", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond, // 缩短熔断时间，方便测试
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	// 触发熔断
	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error {
			return errCacheDown
		})
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 等待超时后转半开
	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态为HALF_OPEN，实际%s", cb.State())
	}

	// 探测成功，转回关闭
	err := cb.Execute(func() error {
		return nil
	})
	if err != nil {
		t.Fatalf("探测请求应成功: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailure 测试半开状态探测失败后重新熔断
func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("detail-cache", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error {
			return errCacheDown
		})
	}

	time.Sleep(60 * time.Millisecond)

	// 探测失败，立即转回打开
	_ = cb.Execute(func() error {
		return errCacheDown
	})
	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := NewCircuitBreaker("detail-cache", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errCacheDown
		})
	}

	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Errorf("期望记录CLOSED->OPEN，实际%v", transitions)
	}
}
