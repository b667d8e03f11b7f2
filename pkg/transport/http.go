package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lk2023060901/quickapi-go/internal/json"
	zlog "github.com/lk2023060901/quickapi-go/pkg/log"
	"github.com/lk2023060901/quickapi-go/pkg/metrics"
)

const defaultTimeout = 5 * time.Second

// HTTPClient 为基于 net/http 的默认传输实现。
//
// 设计目标：
//   - 无每次调用级状态，可作为进程级单例共享；
//   - 查询参数通过 net/url 编码，值统一字符串化；
//   - 请求体编码为 JSON 并带 Content-Type。
type HTTPClient struct {
	hc        *http.Client
	userAgent string
	logger    *zap.Logger
}

var _ Client = (*HTTPClient)(nil)

// Option 为 HTTPClient 的可选配置项。
type Option func(*HTTPClient)

// WithTimeout 设置整体请求超时时间。
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// WithHTTPClient 注入自定义 *http.Client（连接池、代理等由调用方控制）。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithUserAgent 设置 User-Agent 请求头。
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger 注入具名日志实例；为空时使用全局日志。
func WithLogger(l *zap.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient 创建默认传输实现。
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		hc: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// defaultClient 为进程级默认传输单例；其自身无状态，可安全共享。
var defaultClient = NewHTTPClient()

// Default 返回进程级默认传输。
func Default() Client {
	return defaultClient
}

func (c *HTTPClient) Get(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, auth, params, nil)
}

func (c *HTTPClient) Options(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodOptions, url, auth, params, nil)
}

func (c *HTTPClient) Head(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodHead, url, auth, params, nil)
}

func (c *HTTPClient) Delete(ctx context.Context, url string, auth Auth, params map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodDelete, url, auth, params, nil)
}

func (c *HTTPClient) Post(ctx context.Context, url string, auth Auth, params map[string]any, body map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, auth, params, body)
}

func (c *HTTPClient) Put(ctx context.Context, url string, auth Auth, params map[string]any, body map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPut, url, auth, params, body)
}

func (c *HTTPClient) Patch(ctx context.Context, url string, auth Auth, params map[string]any, body map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, url, auth, params, body)
}

func (c *HTTPClient) do(ctx context.Context, method, rawURL string, auth Auth, params map[string]any, body map[string]any) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("transport: parse url failed: %w", err)
	}

	if len(params) > 0 {
		q := u.Query()
		keys := maps.Keys(params)
		slices.Sort(keys)
		for _, k := range keys {
			q.Set(k, cast.ToString(params[k]))
		}
		u.RawQuery = q.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("transport: marshal request body failed: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("transport: build request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if auth != nil {
		if err := auth.Apply(req); err != nil {
			return nil, fmt.Errorf("transport: apply auth failed: %w", err)
		}
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		metrics.ObserveRequestError(method)
		return nil, fmt.Errorf("transport: http request failed: %w", err)
	}
	metrics.ObserveRequest(method, res.StatusCode, time.Since(start))
	raw, readErr := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("transport: read response failed: %w", readErr)
	}

	c.log().Debug("http request done",
		zap.String("method", method),
		zlog.FieldEndpoint(u.String()),
		zap.Int("status", res.StatusCode),
		zap.Int("body_bytes", len(raw)),
	)

	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       raw,
	}, nil
}

func (c *HTTPClient) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return zlog.L()
}
