package client

import (
	"github.com/lk2023060901/quickapi-go/pkg/util/typeutil"
)

// Method 为端点声明支持的 HTTP 方法。
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodTrace   Method = "TRACE"
)

var allMethods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodPatch,
	MethodOptions,
	MethodHead,
	MethodTrace,
}

var methodSet = typeutil.NewSet(allMethods...)

// Methods 返回全部受支持方法的快照。
func Methods() []Method {
	out := make([]Method, len(allMethods))
	copy(out, allMethods)
	return out
}

// IsValid 判断方法是否受支持。
func (m Method) IsValid() bool {
	return methodSet.Contain(m)
}

// hasBody 判断该方法按约定是否携带请求体。
func (m Method) hasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	default:
		return false
	}
}
