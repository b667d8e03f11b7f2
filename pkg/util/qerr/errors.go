package qerr

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	CanceledCode int32 = 10000
	TimeoutCode  int32 = 10001
)

// 叶子错误在此集中定义。
// WARN: 新增错误前请先确认下面的错误无法复用。
// 命名规则：Err + 所属阶段 + 错误名。
var (
	// 端点声明阶段。
	ErrClientSetup = newAPIError("client setup invalid", 1, false)

	// 映射转换（dispatch）阶段。
	ErrEncode = newAPIError("value not encodable to mapping", 100, false)
	ErrDecode = newAPIError("mapping not decodable to value", 101, false)

	// 请求执行阶段。
	ErrRequestSerialization  = newAPIError("request serialization failed", 200, false)
	ErrResponseSerialization = newAPIError("response serialization failed", 201, false)
	ErrHTTPStatus            = newAPIError("unexpected http status", 202, true)
	ErrMethodNotImplemented  = newAPIError("http method not implemented", 203, false)

	// 依赖缺失。
	ErrMissingDependency = newAPIError("missing optional dependency", 300, false)

	errUnexpected = newAPIError("unexpected error", 999, false)
)

// HTTPStatusError 携带非 200 响应的状态码，便于调用方直接读取。
//
// 通过 WrapErrHTTPStatus 构造，底层展开为 ErrHTTPStatus 叶子错误，
// errors.Is(err, ErrHTTPStatus) 与 HTTPStatus(err) 均可使用。
type HTTPStatusError struct {
	StatusCode int

	leaf error
}

func (e *HTTPStatusError) Error() string {
	if e.leaf != nil {
		return e.leaf.Error()
	}
	return fmt.Sprintf("unexpected http status[status_code=%d]", e.StatusCode)
}

func (e *HTTPStatusError) Unwrap() error {
	return e.leaf
}

type apiError struct {
	msg       string
	detail    string
	retriable bool
	errCode   int32
}

func newAPIError(msg string, code int32, retriable bool) apiError {
	return apiError{
		msg:       msg,
		detail:    msg,
		retriable: retriable,
		errCode:   code,
	}
}

func (e apiError) code() int32 {
	return e.errCode
}

func (e apiError) Error() string {
	return e.msg
}

func (e apiError) Detail() string {
	return e.detail
}

func (e apiError) Is(err error) bool {
	cause := errors.Cause(err)
	if cause, ok := cause.(apiError); ok {
		return e.errCode == cause.errCode
	}
	return false
}

type multiErrors struct {
	errs []error
}

func (e multiErrors) Unwrap() error {
	if len(e.errs) == 0 {
		return nil
	}
	// 展开链以链尾作为 cause，叶子错误放在末尾时
	// errors.Cause 可以稳定取到 apiError。
	if len(e.errs) == 1 {
		return e.errs[0]
	}
	if len(e.errs) == 2 {
		return e.errs[1]
	}

	return multiErrors{
		errs: e.errs[1:],
	}
}

func (e multiErrors) Error() string {
	final := e.errs[0]
	for i := 1; i < len(e.errs); i++ {
		final = errors.Wrap(e.errs[i], final.Error())
	}
	return final.Error()
}

func (e multiErrors) Is(err error) bool {
	for _, item := range e.errs {
		if errors.Is(item, err) {
			return true
		}
	}
	return false
}

// Combine 将多个错误合并为一个，errors.Is 对其中任意一个错误均成立。
func Combine(errs ...error) error {
	errs = lo.Filter(errs, func(err error, _ int) bool { return err != nil })
	if len(errs) == 0 {
		return nil
	}
	return multiErrors{
		errs,
	}
}
