// Package metrics 提供监控指标功能.
// 支持Prometheus标准，收集HTTP指标和整理引擎的业务指标.
//
// Example:
//
//	import "github.com/tidyvault/tidyvault/pkg/metrics"
//
//	err := metrics.InitMetrics(config.Metrics)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// 记录指标
//	metrics.RequestCounter.WithLabelValues("GET", "/api/v1/organize/files").Inc()
//	metrics.ObjectsMoved.WithLabelValues("batch-organize").Inc()
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 自动注册pprof端点

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tidyvault/tidyvault/pkg/configs"
)

// 全局指标变量.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ObjectsMoved 已移动对象计数器，按移动类型区分（batch-organize / manual-move / revert）.
	ObjectsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "organizer_objects_moved_total",
			Help: "Total number of objects moved by the organizer",
		},
		[]string{"kind"},
	)

	// BatchesApplied 已应用批次计数器.
	BatchesApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "organizer_batches_applied_total",
			Help: "Total number of organization batches applied",
		},
	)

	// BatchesReverted 已回退批次计数器.
	BatchesReverted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "organizer_batches_reverted_total",
			Help: "Total number of organization batches reverted",
		},
	)

	// ClassifierFallbacks 分类器降级计数器，按原因区分（gateway-error / partial）.
	ClassifierFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_fallbacks_total",
			Help: "Total number of files classified by the fallback rule table",
		},
		[]string{"reason"},
	)

	// registry Prometheus注册表.
	registry = prometheus.NewRegistry()
)

// InitMetrics 初始化Metrics.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	// 注册标准收集器
	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// 注册自定义指标
	registry.MustRegister(
		RequestCounter, RequestDuration,
		ObjectsMoved, BatchesApplied, BatchesReverted, ClassifierFallbacks,
	)

	return nil
}

// StartMetricsServer 启动Metrics HTTP服务器.
func StartMetricsServer(config configs.MetricsConfig, debugEngine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	debugEngine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// 如果启用pprof，注册pprof端点
	if config.Pprof {
		debugEngine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}
