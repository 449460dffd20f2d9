package metrics

import (
	"errors"
	"io"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Prom 全局指标注册表
var Prom = New()

// Metrics 指标注册表接口
type Metrics interface {
	Registry() *prometheus.Registry
}

// Prometheus 独立的 prometheus 注册表，不使用默认全局注册表
type Prometheus struct {
	registry *prometheus.Registry
}

// New 创建指标注册表
func New() *Prometheus {
	return &Prometheus{
		registry: prometheus.NewRegistry(),
	}
}

// WithRuntimeCollector 注册 Go 运行时 GC 与内存指标，重复调用无副作用
func (p *Prometheus) WithRuntimeCollector() *Prometheus {
	p.register(collectors.NewGoCollector(
		collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile(`^/(gc|memory)/`)}),
	))
	return p
}

// WithBuildInfoCollector 注册构建信息指标，重复调用无副作用
func (p *Prometheus) WithBuildInfoCollector() *Prometheus {
	p.register(collectors.NewBuildInfoCollector())
	return p
}

func (p *Prometheus) register(c prometheus.Collector) {
	if err := p.registry.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
	}
}

// Registry 返回底层注册表
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteText 以 prometheus 文本格式输出当前所有指标
func (p *Prometheus) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
