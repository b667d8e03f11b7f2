package qerr

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Code 返回给定错误对应的错误码。
func Code(err error) int32 {
	if err == nil {
		return 0
	}

	cause := errors.Cause(err)
	switch specificErr := cause.(type) {
	case apiError:
		return specificErr.code()

	default:
		if errors.Is(specificErr, context.Canceled) {
			return CanceledCode
		} else if errors.Is(specificErr, context.DeadlineExceeded) {
			return TimeoutCode
		} else {
			return errUnexpected.code()
		}
	}
}

// IsRetryableErr 返回该错误是否值得调用方重试。
// 框架自身从不重试，该标记仅供调用方决策。
func IsRetryableErr(err error) bool {
	if err, ok := errors.Cause(err).(apiError); ok {
		return err.retriable
	}
	return false
}

// Ok 返回 err 是否表示成功。
func Ok(err error) bool {
	return err == nil
}

// HTTPStatus 从错误链中提取 HTTP 状态码。
// 仅对 WrapErrHTTPStatus 构造的错误返回 ok=true。
func HTTPStatus(err error) (int, bool) {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// WrapErrClientSetup 构造端点声明错误，attribute 为缺失或非法的声明属性。
func WrapErrClientSetup(attribute string, msg ...string) error {
	err := wrapFields(ErrClientSetup, value("attribute", attribute))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrEncode 构造编码方向的转换错误，expectedType 为实例的声明类型名。
// cause 可为 nil。
func WrapErrEncode(expectedType string, cause error, msg ...string) error {
	err := wrapFieldsWithCause(ErrEncode, cause, value("expected_type", expectedType))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrDecode 构造解码方向的转换错误，expectedType 为目标声明类型名。
// cause 可为 nil。
func WrapErrDecode(expectedType string, cause error, msg ...string) error {
	err := wrapFieldsWithCause(ErrDecode, cause, value("expected_type", expectedType))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrRequestSerialization 将编码失败提升为请求序列化错误。
func WrapErrRequestSerialization(expectedType string, cause error, msg ...string) error {
	err := wrapFieldsWithCause(ErrRequestSerialization, cause, value("expected_type", expectedType))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrResponseSerialization 将解码失败提升为响应序列化错误。
func WrapErrResponseSerialization(expectedType string, cause error, msg ...string) error {
	err := wrapFieldsWithCause(ErrResponseSerialization, cause, value("expected_type", expectedType))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrHTTPStatus 构造非 200 响应错误，statusCode 为实际收到的状态码。
func WrapErrHTTPStatus(statusCode int, msg ...string) error {
	err := error(&HTTPStatusError{
		StatusCode: statusCode,
		leaf:       wrapFields(ErrHTTPStatus, value("status_code", statusCode)),
	})
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrMethodNotImplemented 构造方法未实现错误。
func WrapErrMethodNotImplemented(method string, msg ...string) error {
	err := wrapFields(ErrMethodNotImplemented, value("method", method))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrMissingDependency 构造可选依赖缺失错误，dependency 为依赖名。
func WrapErrMissingDependency(dependency string, msg ...string) error {
	err := wrapFields(ErrMissingDependency, value("dependency", dependency))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

type errorField struct {
	key string
	val any
}

func (f errorField) String() string {
	return fmt.Sprintf("%s=%v", f.key, f.val)
}

func value(key string, val any) errorField {
	return errorField{key: key, val: val}
}

func wrapFields(err apiError, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.detail = err.msg
	return err
}

// wrapFieldsWithCause 在叶子错误上附加字段，并保留底层 cause。
// errors.Is 对叶子错误与 cause 均成立，errors.Cause 取到叶子错误。
func wrapFieldsWithCause(leaf apiError, cause error, fields ...errorField) error {
	err := wrapFields(leaf, fields...)
	if cause == nil {
		return err
	}
	return Combine(cause, err)
}
