// Package catfacts 基于端点声明框架封装 catfact.ninja 的类型化客户端。
package catfacts

import (
	"context"
	"fmt"

	"github.com/lk2023060901/quickapi-go/pkg/client"
	"github.com/lk2023060901/quickapi-go/pkg/transport"
)

// Client 为 catfact.ninja 的类型化客户端。
//
// 设计目标：
//   - 端点声明集中由 Config 管理，声明类错误在 NewClient 阶段暴露；
//   - 每次调用使用独立的端点对象，Client 自身可跨协程共享；
//   - 请求参数与响应体全部类型化，业务侧不接触原始 JSON。
type Client struct {
	cfg  Config
	t    transport.Client
	auth transport.Auth
}

// NewClient 创建一个新的 catfact.ninja 客户端。
// 全部字段均可留空使用默认值。
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.fillDefaults()

	t := cfg.Transport
	if t == nil {
		t = transport.NewHTTPClient(
			transport.WithTimeout(cfg.Timeout),
			transport.WithLogger(cfg.Logger),
		)
	}

	var auth transport.Auth
	if cfg.APIToken != "" {
		auth = transport.TokenAuth{Token: cfg.APIToken}
	}

	c := &Client{cfg: cfg, t: t, auth: auth}

	// 启动时校验全部端点声明，执行阶段不会再出现声明类失败。
	if _, err := c.factEndpoint(); err != nil {
		return nil, fmt.Errorf("catfacts: declare /fact failed: %w", err)
	}
	if _, err := c.factsEndpoint(); err != nil {
		return nil, fmt.Errorf("catfacts: declare /facts failed: %w", err)
	}
	if _, err := c.breedsEndpoint(); err != nil {
		return nil, fmt.Errorf("catfacts: declare /breeds failed: %w", err)
	}
	return c, nil
}

func (c *Client) factEndpoint() (*client.API[CatFact], error) {
	return client.New[CatFact](client.Spec{
		URL:    c.cfg.BaseURL + "/fact",
		Method: client.MethodGet,
		Auth:   c.auth,
		Client: c.t,
		Logger: c.cfg.Logger,
	})
}

func (c *Client) factsEndpoint() (*client.API[FactsPage], error) {
	return client.New[FactsPage](client.Spec{
		URL:    c.cfg.BaseURL + "/facts",
		Method: client.MethodGet,
		Auth:   c.auth,
		Client: c.t,
		Logger: c.cfg.Logger,
	})
}

func (c *Client) breedsEndpoint() (*client.API[BreedsPage], error) {
	return client.New[BreedsPage](client.Spec{
		URL:    c.cfg.BaseURL + "/breeds",
		Method: client.MethodGet,
		Auth:   c.auth,
		Client: c.t,
		Logger: c.cfg.Logger,
	})
}

// RandomFact 返回一条随机猫咪事实。
// maxLength 大于 0 时约束事实的最大长度。
//
// 对应文档中的：
//
//	GET https://catfact.ninja/fact
func (c *Client) RandomFact(ctx context.Context, maxLength int) (*CatFact, error) {
	ep, err := c.factEndpoint()
	if err != nil {
		return nil, err
	}

	opts := make([]client.ExecuteOption, 0, 1)
	if maxLength > 0 {
		opts = append(opts, client.WithParams(factQuery{MaxLength: maxLength}))
	}

	resp, err := ep.Execute(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &resp.Body, nil
}

// ListFacts 返回指定页的猫咪事实。
// limit 小于等于 0 时使用默认分页大小。
//
// 对应文档中的：
//
//	GET https://catfact.ninja/facts
func (c *Client) ListFacts(ctx context.Context, page, limit int) (*FactsPage, error) {
	ep, err := c.factsEndpoint()
	if err != nil {
		return nil, err
	}
	resp, err := ep.Execute(ctx, client.WithParams(normalizePage(page, limit)))
	if err != nil {
		return nil, err
	}
	return &resp.Body, nil
}

// ListBreeds 返回指定页的猫咪品种。
// limit 小于等于 0 时使用默认分页大小。
//
// 对应文档中的：
//
//	GET https://catfact.ninja/breeds
func (c *Client) ListBreeds(ctx context.Context, page, limit int) (*BreedsPage, error) {
	ep, err := c.breedsEndpoint()
	if err != nil {
		return nil, err
	}
	resp, err := ep.Execute(ctx, client.WithParams(normalizePage(page, limit)))
	if err != nil {
		return nil, err
	}
	return &resp.Body, nil
}

func normalizePage(page, limit int) pageQuery {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return pageQuery{Page: page, Limit: limit}
}
