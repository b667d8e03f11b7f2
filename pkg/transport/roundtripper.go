package transport

import (
	"net/http"

	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// RoundTripperClient 为备选传输实现：完全复用 HTTPClient 的请求编排，
// 但底层收发交给调用方提供的 http.RoundTripper（自定义连接栈、录制
// 回放、代理注入等场景）。
//
// 与默认传输不同，RoundTripper 属于调用方必须自备的依赖：缺失时
// 构造阶段即失败，不会静默退回默认实现。
type RoundTripperClient struct {
	*HTTPClient
}

var _ Client = (*RoundTripperClient)(nil)

// NewRoundTripperClient 基于给定的 http.RoundTripper 创建传输。
// rt 为 nil 时返回依赖缺失错误。
func NewRoundTripperClient(rt http.RoundTripper, opts ...Option) (*RoundTripperClient, error) {
	if rt == nil {
		return nil, qerr.WrapErrMissingDependency("round tripper",
			"transport: RoundTripperClient requires a caller-supplied http.RoundTripper")
	}

	inner := NewHTTPClient(opts...)
	inner.hc = &http.Client{
		Transport: rt,
		Timeout:   inner.hc.Timeout,
	}
	return &RoundTripperClient{HTTPClient: inner}, nil
}
