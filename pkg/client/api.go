// Package client 实现声明式端点：一次性声明 URL、方法与请求/响应类型，
// 之后的每次执行由框架完成编码、调用与解码。
//
// 设计目标：
//   - 声明在 New 阶段一次性校验，非法声明直接失败且不可执行；
//   - 执行为同步阻塞：编码 -> 网络调用 -> 解码，无内部重试；
//   - 所有错误原样上抛，框架不吞错、不记错误日志；
//   - 同一端点对象上的并发执行不做内部同步，需要隔离的调用方
//     应使用各自独立的端点对象。
package client

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"go.uber.org/zap"

	zlog "github.com/lk2023060901/quickapi-go/pkg/log"
	"github.com/lk2023060901/quickapi-go/pkg/serializer"
	"github.com/lk2023060901/quickapi-go/pkg/transport"
	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// executionState 表示一次执行在状态机中的位置。
type executionState int32

const (
	stateIdle executionState = iota
	stateEncoding
	stateSent
	stateDecoding
	stateComplete
	stateFailed
)

var stateNames = map[executionState]string{
	stateIdle:     "idle",
	stateEncoding: "encoding",
	stateSent:     "sent",
	stateDecoding: "decoding",
	stateComplete: "complete",
	stateFailed:   "failed",
}

func (s executionState) String() string {
	return stateNames[s]
}

// Spec 为端点声明：URL、方法、默认请求参数/请求体实例与响应类型
// 之外的可选协作对象。声明一经 New 校验通过即不可变。
type Spec struct {
	// URL 为端点地址，必填。
	URL string
	// Method 为 HTTP 方法，留空时默认 GET。
	Method Method
	// Auth 为默认凭证，可被单次执行覆盖；nil 表示匿名。
	Auth transport.Auth
	// RequestParams 为默认请求参数实例，可被单次执行覆盖。
	RequestParams any
	// RequestBody 为默认请求体实例，可被单次执行覆盖。
	RequestBody any
	// Client 为 HTTP 能力覆盖，nil 时使用进程级默认传输。
	Client transport.Client
	// Registry 为转换注册表覆盖，nil 时使用默认注册表。
	Registry *serializer.Registry
	// Logger 允许调用方注入具名日志实例，为空时使用全局日志。
	Logger *zap.Logger
}

// API 为经过校验的端点对象，R 为声明的响应体类型。
//
// 注意：last 响应槽与执行状态不加锁，属于调用方职责范围；
// 注册表与传输实现均为只读共享，可跨端点并发使用。
type API[R any] struct {
	spec     Spec
	method   Method
	registry *serializer.Registry
	client   transport.Client
	logger   *zap.Logger

	respName string

	state executionState
	last  *Response[R]
}

// New 校验端点声明并构造端点对象。
//
// 校验一次性完成且不可重试，任一失败返回 ErrClientSetup 并标明
// 出错的声明属性：
//   - url 缺失；
//   - method 非法；
//   - 响应类型为接口（声明方忘记将类型参数具体化，如 API[any]）；
//   - 响应类型不被任何已注册策略认领（确保执行阶段的解码
//     在发起网络调用之前就已注定可行）。
func New[R any](spec Spec) (*API[R], error) {
	if spec.URL == "" {
		return nil, qerr.WrapErrClientSetup("url")
	}

	method := spec.Method
	if method == "" {
		method = MethodGet
	}
	if !method.IsValid() {
		return nil, qerr.WrapErrClientSetup("method", fmt.Sprintf("unsupported method %q", string(spec.Method)))
	}

	respType := reflect.TypeOf((*R)(nil)).Elem()
	if respType.Kind() == reflect.Interface {
		return nil, qerr.WrapErrClientSetup("response_body", "response type must be concrete, not an interface")
	}

	registry := spec.Registry
	if registry == nil {
		registry = serializer.Default()
	}
	if !registry.CanDecode(respType) {
		return nil, qerr.WrapErrClientSetup("response_body", fmt.Sprintf("no strategy can decode %s", respType))
	}

	cli := spec.Client
	if cli == nil {
		cli = transport.Default()
	}

	return &API[R]{
		spec:     spec,
		method:   method,
		registry: registry,
		client:   cli,
		logger:   spec.Logger,
		respName: respType.String(),
		state:    stateIdle,
	}, nil
}

// Execute 执行一次端点调用并返回类型化的响应信封。
//
// 未被 opts 覆盖的参数/请求体/传输/凭证回落到声明中的默认值。
// 非 200 状态码直接返回 ErrHTTPStatus，不重试、无部分成功。
func (a *API[R]) Execute(ctx context.Context, opts ...ExecuteOption) (*Response[R], error) {
	call := callOptions{
		params: a.spec.RequestParams,
		body:   a.spec.RequestBody,
		client: a.client,
		auth:   a.spec.Auth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&call)
		}
	}

	a.state = stateEncoding
	params, err := a.encode(call.params)
	if err != nil {
		a.state = stateFailed
		return nil, qerr.WrapErrRequestSerialization(fmt.Sprintf("%T", call.params), err)
	}
	var body map[string]any
	if a.method.hasBody() {
		body, err = a.encode(call.body)
		if err != nil {
			a.state = stateFailed
			return nil, qerr.WrapErrRequestSerialization(fmt.Sprintf("%T", call.body), err)
		}
	}

	var cres *transport.Response
	switch a.method {
	case MethodGet:
		cres, err = call.client.Get(ctx, a.spec.URL, call.auth, params)
	case MethodOptions:
		cres, err = call.client.Options(ctx, a.spec.URL, call.auth, params)
	case MethodHead:
		cres, err = call.client.Head(ctx, a.spec.URL, call.auth, params)
	case MethodDelete:
		cres, err = call.client.Delete(ctx, a.spec.URL, call.auth, params)
	case MethodPost:
		cres, err = call.client.Post(ctx, a.spec.URL, call.auth, params, body)
	case MethodPut:
		cres, err = call.client.Put(ctx, a.spec.URL, call.auth, params, body)
	case MethodPatch:
		cres, err = call.client.Patch(ctx, a.spec.URL, call.auth, params, body)
	default:
		// TRACE 在能力契约中没有对应动词。
		a.state = stateFailed
		return nil, qerr.WrapErrMethodNotImplemented(string(a.method))
	}
	a.state = stateSent
	if err != nil {
		a.state = stateFailed
		return nil, err
	}

	if cres.StatusCode != http.StatusOK {
		a.state = stateFailed
		return nil, qerr.WrapErrHTTPStatus(cres.StatusCode)
	}

	a.state = stateDecoding
	values, err := cres.JSON()
	if err != nil {
		a.state = stateFailed
		return nil, qerr.WrapErrResponseSerialization(a.respName, err, "response body is not a JSON object")
	}
	decoded, err := serializer.Decode[R](a.registry, values)
	if err != nil {
		a.state = stateFailed
		return nil, qerr.WrapErrResponseSerialization(a.respName, err)
	}

	resp := &Response[R]{
		ClientResponse: cres,
		Body:           decoded,
	}
	a.last = resp
	a.state = stateComplete

	a.log().Debug("endpoint executed",
		zap.String("method", string(a.method)),
		zlog.FieldEndpoint(a.spec.URL),
		zap.Int("status", cres.StatusCode),
	)
	return resp, nil
}

// Last 返回最近一次成功执行的响应信封；尚未成功执行过时为 nil。
func (a *API[R]) Last() *Response[R] {
	return a.last
}

// State 返回端点当前所处的执行状态名，仅用于诊断。
func (a *API[R]) State() string {
	return a.state.String()
}

// encode 将实例转换为普通映射；实例缺省时使用空映射。
func (a *API[R]) encode(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	return a.registry.ToMap(v)
}

func (a *API[R]) log() *zap.Logger {
	if a.logger != nil {
		return a.logger
	}
	return zlog.L()
}
