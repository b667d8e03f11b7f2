package transport

import (
	"time"

	"github.com/spf13/viper"
)

// Config 描述默认传输的可序列化配置（yaml/json）。
type Config struct {
	// Timeout 为整体请求超时时间，支持 "5s" 一类的时长字符串。
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
	// UserAgent 为 User-Agent 请求头，留空则不设置。
	UserAgent string `mapstructure:"user-agent" json:"user-agent"`
}

// ConfigFromViper 从 viper 实例加载传输配置。
// key 非空时取其子树，为空时取整份配置。
func ConfigFromViper(v *viper.Viper, key string) (Config, error) {
	var cfg Config
	if v == nil {
		return cfg, nil
	}

	var err error
	if key == "" {
		err = v.Unmarshal(&cfg)
	} else {
		err = v.UnmarshalKey(key, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewHTTPClientFromConfig 基于配置创建默认传输实现。
func NewHTTPClientFromConfig(cfg Config, opts ...Option) *HTTPClient {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
	}
	return NewHTTPClient(append(base, opts...)...)
}
