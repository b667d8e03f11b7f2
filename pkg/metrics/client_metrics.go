package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	clientMetricSubsystem = "client"
)

var (
	clientMetricsRegisterOnce sync.Once

	// RequestsTotal 按方法与状态码统计已完成的 HTTP 请求数。
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: clientMetricSubsystem,
		Name:      "requests_total",
		Help:      "已完成的 HTTP 请求总数",
	}, []string{methodLabelName, statusLabelName})

	// RequestErrorsTotal 统计未取得响应的请求数（网络错误、超时等）。
	RequestErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: clientMetricSubsystem,
		Name:      "request_errors_total",
		Help:      "未取得响应的 HTTP 请求总数",
	}, []string{methodLabelName})

	// RequestDuration 按方法统计请求耗时分布。
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: clientMetricSubsystem,
		Name:      "request_duration_seconds",
		Help:      "HTTP 请求耗时分布",
		Buckets:   prometheus.DefBuckets,
	}, []string{methodLabelName})
)

func registerClientMetrics(r prometheus.Registerer) {
	clientMetricsRegisterOnce.Do(func() {
		r.MustRegister(RequestsTotal)
		r.MustRegister(RequestErrorsTotal)
		r.MustRegister(RequestDuration)
	})
}

// ObserveRequest 记录一次取得响应的请求。
func ObserveRequest(method string, statusCode int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveRequestError 记录一次未取得响应的请求。
func ObserveRequestError(method string) {
	RequestErrorsTotal.WithLabelValues(method).Inc()
}
