package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/quickapi-go/pkg/transport"
	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

type catFact struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

type catFactPage struct {
	CurrentPage int       `json:"current_page"`
	Data        []catFact `json:"data"`
}

type pageParams struct {
	Page int `json:"page"`
}

// fakeClient 记录最近一次调用并按脚本返回，实现 transport.Client。
type fakeClient struct {
	method string
	url    string
	auth   transport.Auth
	params map[string]any
	body   map[string]any

	resp *transport.Response
	err  error
}

var _ transport.Client = (*fakeClient)(nil)

func (f *fakeClient) record(method, url string, auth transport.Auth, params, body map[string]any) (*transport.Response, error) {
	f.method = method
	f.url = url
	f.auth = auth
	f.params = params
	f.body = body
	return f.resp, f.err
}

func (f *fakeClient) Get(_ context.Context, url string, auth transport.Auth, params map[string]any) (*transport.Response, error) {
	return f.record(http.MethodGet, url, auth, params, nil)
}

func (f *fakeClient) Options(_ context.Context, url string, auth transport.Auth, params map[string]any) (*transport.Response, error) {
	return f.record(http.MethodOptions, url, auth, params, nil)
}

func (f *fakeClient) Head(_ context.Context, url string, auth transport.Auth, params map[string]any) (*transport.Response, error) {
	return f.record(http.MethodHead, url, auth, params, nil)
}

func (f *fakeClient) Delete(_ context.Context, url string, auth transport.Auth, params map[string]any) (*transport.Response, error) {
	return f.record(http.MethodDelete, url, auth, params, nil)
}

func (f *fakeClient) Post(_ context.Context, url string, auth transport.Auth, params, body map[string]any) (*transport.Response, error) {
	return f.record(http.MethodPost, url, auth, params, body)
}

func (f *fakeClient) Put(_ context.Context, url string, auth transport.Auth, params, body map[string]any) (*transport.Response, error) {
	return f.record(http.MethodPut, url, auth, params, body)
}

func (f *fakeClient) Patch(_ context.Context, url string, auth transport.Auth, params, body map[string]any) (*transport.Response, error) {
	return f.record(http.MethodPatch, url, auth, params, body)
}

func okJSON(body string) *transport.Response {
	return &transport.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

type APISuite struct {
	suite.Suite
}

func (s *APISuite) TestNewValidation() {
	_, err := New[catFactPage](Spec{})
	s.ErrorIs(err, qerr.ErrClientSetup)
	s.ErrorContains(err, "url")

	_, err = New[catFactPage](Spec{URL: "https://catfact.ninja/facts", Method: "FETCH"})
	s.ErrorIs(err, qerr.ErrClientSetup)
	s.ErrorContains(err, "method")

	// 响应类型必须是具体类型。
	_, err = New[any](Spec{URL: "https://catfact.ninja/facts"})
	s.ErrorIs(err, qerr.ErrClientSetup)
	s.ErrorContains(err, "response_body")

	// 响应类型必须被某个策略认领。
	_, err = New[map[string]any](Spec{URL: "https://catfact.ninja/facts"})
	s.ErrorIs(err, qerr.ErrClientSetup)
	s.ErrorContains(err, "response_body")

	api, err := New[catFactPage](Spec{URL: "https://catfact.ninja/facts"})
	s.Require().NoError(err)
	s.Equal("idle", api.State())
}

func (s *APISuite) TestExecuteGet() {
	fake := &fakeClient{resp: okJSON(`{"current_page":1,"data":[{"fact":"Some fact","length":9}]}`)}
	api, err := New[catFactPage](Spec{
		URL:           "https://catfact.ninja/facts",
		RequestParams: pageParams{Page: 1},
		Client:        fake,
	})
	s.Require().NoError(err)

	resp, err := api.Execute(context.Background())
	s.Require().NoError(err)
	s.Equal(http.MethodGet, fake.method)
	s.Equal("https://catfact.ninja/facts", fake.url)
	s.Equal(map[string]any{"page": float64(1)}, fake.params)
	s.Nil(fake.body)

	s.Equal(http.StatusOK, resp.ClientResponse.StatusCode)
	s.Equal(1, resp.Body.CurrentPage)
	s.Require().Len(resp.Body.Data, 1)
	s.Equal(catFact{Fact: "Some fact", Length: 9}, resp.Body.Data[0])
	s.Equal("complete", api.State())
}

func (s *APISuite) TestExecutePostBody() {
	fake := &fakeClient{resp: okJSON(`{"fact":"Created","length":7}`)}
	api, err := New[catFact](Spec{
		URL:    "https://catfact.ninja/facts",
		Method: MethodPost,
		Client: fake,
	})
	s.Require().NoError(err)

	_, err = api.Execute(context.Background(), WithBody(catFact{Fact: "Created", Length: 7}))
	s.Require().NoError(err)
	s.Equal(http.MethodPost, fake.method)
	s.Equal(map[string]any{"fact": "Created", "length": float64(7)}, fake.body)
	// 未声明参数时携带空映射而非 nil。
	s.Equal(map[string]any{}, fake.params)
}

func (s *APISuite) TestExecuteOverrides() {
	declared := &fakeClient{resp: okJSON(`{"fact":"x","length":1}`)}
	override := &fakeClient{resp: okJSON(`{"fact":"y","length":1}`)}
	api, err := New[catFact](Spec{
		URL:           "https://catfact.ninja/fact",
		RequestParams: pageParams{Page: 1},
		Client:        declared,
	})
	s.Require().NoError(err)

	resp, err := api.Execute(context.Background(),
		WithClient(override),
		WithParams(pageParams{Page: 7}),
		WithAuth(transport.TokenAuth{Token: "t0k3n"}),
	)
	s.Require().NoError(err)
	s.Equal("y", resp.Body.Fact)
	s.Empty(declared.method, "declared client must not be called when overridden")
	s.Equal(map[string]any{"page": float64(7)}, override.params)
	s.Equal(transport.TokenAuth{Token: "t0k3n"}, override.auth)
}

func (s *APISuite) TestExecuteHTTPStatus() {
	fake := &fakeClient{resp: &transport.Response{StatusCode: http.StatusUnauthorized}}
	api, err := New[catFact](Spec{URL: "https://catfact.ninja/fact", Client: fake})
	s.Require().NoError(err)

	_, err = api.Execute(context.Background())
	s.ErrorIs(err, qerr.ErrHTTPStatus)
	code, ok := qerr.HTTPStatus(err)
	s.True(ok)
	s.Equal(http.StatusUnauthorized, code)
	s.True(qerr.IsRetryableErr(err))
	s.Equal("failed", api.State())
	s.Nil(api.Last())
}

func (s *APISuite) TestExecuteTraceNotImplemented() {
	api, err := New[catFact](Spec{
		URL:    "https://catfact.ninja/fact",
		Method: MethodTrace,
		Client: &fakeClient{},
	})
	s.Require().NoError(err)

	_, err = api.Execute(context.Background())
	s.ErrorIs(err, qerr.ErrMethodNotImplemented)
	s.ErrorContains(err, "TRACE")
}

func (s *APISuite) TestExecuteRequestSerialization() {
	api, err := New[catFact](Spec{
		URL:    "https://catfact.ninja/fact",
		Client: &fakeClient{resp: okJSON(`{}`)},
	})
	s.Require().NoError(err)

	// int 不被任何策略认领。
	_, err = api.Execute(context.Background(), WithParams(42))
	s.ErrorIs(err, qerr.ErrRequestSerialization)
	s.ErrorIs(err, qerr.ErrEncode)
}

func (s *APISuite) TestExecuteResponseSerialization() {
	// 响应缺 length：普通记录解码是严格的。
	fake := &fakeClient{resp: okJSON(`{"fact":"Some fact"}`)}
	api, err := New[catFact](Spec{URL: "https://catfact.ninja/fact", Client: fake})
	s.Require().NoError(err)

	_, err = api.Execute(context.Background())
	s.ErrorIs(err, qerr.ErrResponseSerialization)
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "length")

	// 响应体不是 JSON 对象。
	fake.resp = okJSON(`[1,2,3]`)
	_, err = api.Execute(context.Background())
	s.ErrorIs(err, qerr.ErrResponseSerialization)
}

func (s *APISuite) TestLastWins() {
	fake := &fakeClient{resp: okJSON(`{"fact":"first","length":5}`)}
	api, err := New[catFact](Spec{URL: "https://catfact.ninja/fact", Client: fake})
	s.Require().NoError(err)

	s.Nil(api.Last())

	first, err := api.Execute(context.Background())
	s.Require().NoError(err)
	s.Same(first, api.Last())

	fake.resp = okJSON(`{"fact":"second","length":6}`)
	second, err := api.Execute(context.Background())
	s.Require().NoError(err)
	s.Same(second, api.Last())
	s.Equal("second", api.Last().Body.Fact)

	// 失败不覆盖最近一次成功结果。
	fake.resp = &transport.Response{StatusCode: http.StatusInternalServerError}
	_, err = api.Execute(context.Background())
	s.Error(err)
	s.Same(second, api.Last())
}

func (s *APISuite) TestMethods() {
	s.True(MethodGet.IsValid())
	s.True(MethodTrace.IsValid())
	s.False(Method("FETCH").IsValid())
	s.Len(Methods(), 8)

	s.True(MethodPost.hasBody())
	s.False(MethodGet.hasBody())
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APISuite))
}
