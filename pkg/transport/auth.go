package transport

import (
	"net/http"
)

// Auth 抽象了请求凭证的注入方式。
type Auth interface {
	// Apply 将凭证写入请求（通常为设置请求头）。
	Apply(req *http.Request) error
}

// TokenAuth 以 "Authorization: <Scheme> <Token>" 形式注入令牌凭证。
type TokenAuth struct {
	Token string
	// Scheme 留空时默认为 Bearer。
	Scheme string
}

var _ Auth = TokenAuth{}

func (a TokenAuth) Apply(req *http.Request) error {
	scheme := a.Scheme
	if scheme == "" {
		scheme = "Bearer"
	}
	req.Header.Set("Authorization", scheme+" "+a.Token)
	return nil
}

// BasicAuth 注入 HTTP Basic 凭证。
type BasicAuth struct {
	Username string
	Password string
}

var _ Auth = BasicAuth{}

func (a BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)
	return nil
}
