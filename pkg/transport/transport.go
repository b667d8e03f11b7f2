// Package transport 定义框架所依赖的 HTTP 能力契约及其参考实现。
//
// 框架核心只面对 Client 接口：按动词发起一次请求并取回状态码、
// 响应头与原始字节；连接管理、TLS、超时等全部由实现方负责。
// 实现必须无状态、可重入，可作为进程级单例跨端点共享。
package transport

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI 用于解析响应体，行为与 encoding/json 对齐。
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Response 为一次 HTTP 调用的原始结果。
type Response struct {
	// StatusCode 为响应状态码。
	StatusCode int
	// Header 为响应头。
	Header http.Header
	// Body 为完整读取后的响应体字节。
	Body []byte
}

// JSON 将响应体解析为普通映射。空响应体返回空映射。
func (r *Response) JSON() (map[string]any, error) {
	out := make(map[string]any)
	if len(r.Body) == 0 {
		return out, nil
	}
	if err := jsonAPI.Unmarshal(r.Body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Client 抽象了框架需要的全部 HTTP 动词。
//
// 约定：
//   - GET/OPTIONS/HEAD/DELETE 只携带查询参数；
//   - POST/PUT/PATCH 额外携带 JSON 请求体；
//   - auth 为 nil 时匿名访问；
//   - 实现只负责发起请求与回传原始结果，不做状态码判定与重试。
type Client interface {
	Get(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error)
	Options(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error)
	Head(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error)
	Delete(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error)
	Post(ctx context.Context, url string, auth Auth, params map[string]any, body map[string]any) (*Response, error)
	Put(ctx context.Context, url string, auth Auth, params map[string]any, body map[string]any) (*Response, error)
	Patch(ctx context.Context, url string, auth Auth, params map[string]any, body map[string]any) (*Response, error)
}
