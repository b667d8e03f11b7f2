package client

import (
	"github.com/lk2023060901/quickapi-go/pkg/transport"
)

// callOptions 为单次执行的可覆盖项，未覆盖时回落到声明中的默认值。
type callOptions struct {
	params any
	body   any
	client transport.Client
	auth   transport.Auth
}

// ExecuteOption 为 Execute 的可选覆盖项。
type ExecuteOption func(*callOptions)

// WithParams 覆盖本次执行的请求参数实例。
func WithParams(v any) ExecuteOption {
	return func(o *callOptions) {
		o.params = v
	}
}

// WithBody 覆盖本次执行的请求体实例。
func WithBody(v any) ExecuteOption {
	return func(o *callOptions) {
		o.body = v
	}
}

// WithClient 覆盖本次执行使用的 HTTP 能力实现。
func WithClient(c transport.Client) ExecuteOption {
	return func(o *callOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithAuth 覆盖本次执行使用的凭证，显式传 nil 表示匿名访问。
func WithAuth(a transport.Auth) ExecuteOption {
	return func(o *callOptions) {
		o.auth = a
	}
}
