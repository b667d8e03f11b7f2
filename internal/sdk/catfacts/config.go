package catfacts

import (
	"time"

	"go.uber.org/zap"

	"github.com/lk2023060901/quickapi-go/pkg/transport"
)

const (
	// 默认服务端 API 基地址与分页参数。
	defaultBaseURL   = "https://catfact.ninja"
	defaultTimeout   = 5 * time.Second
	defaultPageLimit = 10
)

// Config 描述 catfact.ninja SDK 客户端的基础配置。
//
// 说明：
//   - BaseURL 预留主要便于测试或未来多环境支持，通常使用默认值即可；
//   - APIToken 非空时以 Bearer 方式注入全部请求；
//   - Transport 允许注入自定义传输（录制回放、代理等），为空时按
//     Timeout 构造默认传输。
type Config struct {
	BaseURL string

	Timeout time.Duration

	APIToken string

	// Transport 允许调用方注入自定义传输实现。
	Transport transport.Client

	// Logger 允许调用方注入自定义日志实例；为空时使用全局日志。
	Logger *zap.Logger
}

// Option 为 Config 的可选配置项。
type Option func(*Config)

// WithBaseURL 设置服务端 API 的基础地址。
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// WithTimeout 设置默认传输的整体请求超时时间。
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithAPIToken 设置请求凭证。
func WithAPIToken(token string) Option {
	return func(c *Config) {
		if token != "" {
			c.APIToken = token
		}
	}
}

// WithTransport 注入自定义传输实现。
func WithTransport(t transport.Client) Option {
	return func(c *Config) {
		if t != nil {
			c.Transport = t
		}
	}
}

// WithLogger 注入自定义日志实例。
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

func (c *Config) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}
