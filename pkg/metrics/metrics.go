package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// namespace 是本项目所有 Prometheus 指标使用的命名空间。
	namespace = "quickapi"

	// 以下为当前使用的通用标签名。
	methodLabelName = "method"
	statusLabelName = "status"
)

// Register 将全部指标注册到给定的 registerer。
// registerer 为 nil 时使用 prometheus 默认注册表。
func Register(r prometheus.Registerer) {
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	registerClientMetrics(r)
}
