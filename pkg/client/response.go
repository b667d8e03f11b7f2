package client

import (
	"github.com/lk2023060901/quickapi-go/pkg/transport"
)

// Response 将一次执行的原始传输结果与解码后的类型化 body 配对。
//
// 每次执行都会产生新的 Response；同一端点对象上的后续执行会以
// 新 Response 取代旧的缓存（last-call-wins），不保留历史。
type Response[R any] struct {
	// ClientResponse 为传输层回传的原始响应。
	ClientResponse *transport.Response
	// Body 为按声明类型解码后的响应体。
	Body R
}
