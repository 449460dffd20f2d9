package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ecies"

// 调用结果标签
const (
	OutcomeOK = "ok"
)

// Boundary 跨语言边界调用指标
type Boundary struct {
	Calls    *prometheus.CounterVec   // 调用总数（按操作、结果）
	Duration *prometheus.HistogramVec // 调用耗时
}

// NewBoundary 创建并注册边界指标。同一注册表重复注册时复用已有指标
func NewBoundary(reg prometheus.Registerer) *Boundary {
	b := &Boundary{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "boundary",
				Name:      "calls_total",
				Help:      "Total number of boundary calls by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "boundary",
				Name:      "call_duration_seconds",
				Help:      "Boundary call latency by operation",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"op"},
		),
	}

	b.Calls = registerOrExisting(reg, b.Calls)
	b.Duration = registerOrExisting(reg, b.Duration)

	return b
}

// Observe 记录一次调用。nil 接收者不做任何事
func (b *Boundary) Observe(op, outcome string, elapsed time.Duration) {
	if b == nil {
		return
	}
	b.Calls.WithLabelValues(op, outcome).Inc()
	b.Duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RegisterOutstanding 注册未释放缓冲区数量指标，fn 在采集时调用
func RegisterOutstanding(reg prometheus.Registerer, fn func() float64) error {
	gauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "boundary",
			Name:      "outstanding_buffers",
			Help:      "Buffers handed to the host and not yet released",
		},
		fn,
	)
	return reg.Register(gauge)
}

func registerOrExisting[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
