package serializer

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// fact / factPage 为普通记录：无 validate 标签、未实现 Model。
type fact struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

type factPage struct {
	CurrentPage int    `json:"current_page"`
	Data        []fact `json:"data"`
}

// breed 为带可选字段的普通记录：omitempty 字段允许缺键。
type breed struct {
	Coat    string `json:"coat"`
	Pattern string `json:"pattern,omitempty"`
}

type breedPage struct {
	Data []breed `json:"data"`
}

// pageQuery 为带校验记录：携带 validate 标签。
type pageQuery struct {
	CurrentPage int `json:"current_page" validate:"required,lt=100"`
}

// limitParams 为自校验模型：实现 Model 与 Defaulter。
type limitParams struct {
	Limit int `json:"limit"`
}

func (p *limitParams) Validate() error {
	if p.Limit < 0 {
		return errors.Newf("limit must be non-negative, got %d", p.Limit)
	}
	return nil
}

func (p *limitParams) SetDefaults() {
	if p.Limit == 0 {
		p.Limit = 10
	}
}

// batchRequest 嵌套自校验模型，用于验证自内向外的校验顺序。
type batchRequest struct {
	Pages []limitParams `json:"pages"`
	Tag   string        `json:"tag"`
}

func (r *batchRequest) Validate() error {
	if r.Tag == "" {
		return errors.New("tag is required")
	}
	return nil
}

type SerializerSuite struct {
	suite.Suite

	registry *Registry
}

func (s *SerializerSuite) SetupSuite() {
	s.registry = Default()
}

func (s *SerializerSuite) TestDispatch() {
	cases := []struct {
		instance any
		strategy string
	}{
		{factPage{}, StrategyRecord},
		{&factPage{}, StrategyRecord},
		{pageQuery{}, StrategyValidatedRecord},
		{limitParams{}, StrategySchemaModel},
		{&limitParams{}, StrategySchemaModel},
		{batchRequest{}, StrategySchemaModel},
	}
	for _, c := range cases {
		enc, ok := s.registry.EncoderFor(c.instance)
		s.Require().True(ok, "no encoder for %T", c.instance)
		s.Equal(c.strategy, enc.Name(), "encoder for %T", c.instance)

		dec, ok := s.registry.DecoderFor(reflect.TypeOf(c.instance))
		s.Require().True(ok, "no decoder for %T", c.instance)
		s.Equal(c.strategy, dec.Name(), "decoder for %T", c.instance)
	}
}

func (s *SerializerSuite) TestDispatchRejects() {
	s.False(s.registry.CanEncode(42))
	s.False(s.registry.CanEncode("facts"))
	s.False(s.registry.CanEncode(map[string]any{}))
	s.False(s.registry.CanDecode(reflect.TypeOf([]fact{})))

	_, err := s.registry.ToMap(42)
	s.ErrorIs(err, qerr.ErrEncode)
	s.ErrorContains(err, "int")

	_, err = s.registry.ToMap(nil)
	s.ErrorIs(err, qerr.ErrEncode)

	_, err = s.registry.FromMap(reflect.TypeOf(map[string]any{}), map[string]any{})
	s.ErrorIs(err, qerr.ErrDecode)
}

func (s *SerializerSuite) TestRecordRoundTrip() {
	page := factPage{
		CurrentPage: 1,
		Data: []fact{
			{Fact: "Some fact", Length: 9},
			{Fact: "Another fact", Length: 12},
		},
	}

	values, err := s.registry.ToMap(page)
	s.Require().NoError(err)
	s.Equal(float64(1), values["current_page"])

	got, err := Decode[factPage](s.registry, values)
	s.Require().NoError(err)
	s.Equal(page, got)
}

func (s *SerializerSuite) TestRecordPointerDeclared() {
	values := map[string]any{
		"current_page": float64(2),
		"data":         []any{map[string]any{"fact": "Some fact", "length": float64(9)}},
	}

	got, err := Decode[*factPage](s.registry, values)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(2, got.CurrentPage)
	s.Len(got.Data, 1)
}

func (s *SerializerSuite) TestRecordOmitEmptyRoundTrip() {
	// omitempty 字段为零值时编码侧省略该键，解码必须接受自己的输出。
	b := breed{Coat: "Short"}

	values, err := s.registry.ToMap(b)
	s.Require().NoError(err)
	s.NotContains(values, "pattern")

	got, err := Decode[breed](s.registry, values)
	s.Require().NoError(err)
	s.Equal(b, got)

	// 未声明 omitempty 的字段仍然必填。
	_, err = Decode[breed](s.registry, map[string]any{"pattern": "Ticked"})
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "coat")
}

func (s *SerializerSuite) TestRecordOmitEmptyNested() {
	page := breedPage{Data: []breed{{Coat: "Short"}, {Coat: "Long", Pattern: "Ticked"}}}

	values, err := s.registry.ToMap(page)
	s.Require().NoError(err)

	got, err := Decode[breedPage](s.registry, values)
	s.Require().NoError(err)
	s.Equal(page, got)

	// 嵌套元素的必填检查同样生效。
	values = map[string]any{
		"data": []any{map[string]any{"pattern": "Ticked"}},
	}
	_, err = Decode[breedPage](s.registry, values)
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "coat")
}

func (s *SerializerSuite) TestRecordMissingField() {
	// 缺 current_page：普通记录解码是严格的。
	_, err := Decode[factPage](s.registry, map[string]any{"data": []any{}})
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "current_page")
}

func (s *SerializerSuite) TestRecordTypeMismatch() {
	values := map[string]any{
		"current_page": []any{"not a number"},
		"data":         []any{},
	}
	_, err := Decode[factPage](s.registry, values)
	s.ErrorIs(err, qerr.ErrDecode)
}

func (s *SerializerSuite) TestValidatedRecordRoundTrip() {
	q := pageQuery{CurrentPage: 42}

	values, err := s.registry.ToMap(q)
	s.Require().NoError(err)
	s.Equal(float64(42), values["current_page"])

	got, err := Decode[pageQuery](s.registry, values)
	s.Require().NoError(err)
	s.Equal(q, got)
}

func (s *SerializerSuite) TestValidatedRecordConstraints() {
	got, err := Decode[pageQuery](s.registry, map[string]any{"current_page": float64(99)})
	s.Require().NoError(err)
	s.Equal(99, got.CurrentPage)

	_, err = Decode[pageQuery](s.registry, map[string]any{"current_page": float64(101)})
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "lt")

	// required：缺键即零值，同样判为违约。
	_, err = Decode[pageQuery](s.registry, map[string]any{})
	s.ErrorIs(err, qerr.ErrDecode)
}

func (s *SerializerSuite) TestModelDefaultsAndCoercion() {
	// 缺键时由 SetDefaults 补齐。
	got, err := Decode[limitParams](s.registry, map[string]any{})
	s.Require().NoError(err)
	s.Equal(10, got.Limit)

	// 弱类型输入自动纠偏。
	got, err = Decode[limitParams](s.registry, map[string]any{"limit": "25"})
	s.Require().NoError(err)
	s.Equal(25, got.Limit)
}

func (s *SerializerSuite) TestModelValidate() {
	_, err := Decode[limitParams](s.registry, map[string]any{"limit": float64(-1)})
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "non-negative")
}

func (s *SerializerSuite) TestModelValidatesInnerFirst() {
	// 内层模型先校验：外层 tag 也缺失，但报错应来自内层 limit。
	values := map[string]any{
		"pages": []any{map[string]any{"limit": float64(-5)}},
	}
	_, err := Decode[batchRequest](s.registry, values)
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "non-negative")

	values = map[string]any{
		"pages": []any{map[string]any{"limit": float64(5)}},
	}
	_, err = Decode[batchRequest](s.registry, values)
	s.ErrorIs(err, qerr.ErrDecode)
	s.ErrorContains(err, "tag")
}

func (s *SerializerSuite) TestModelRoundTrip() {
	req := batchRequest{
		Pages: []limitParams{{Limit: 5}},
		Tag:   "daily",
	}

	values, err := s.registry.ToMap(req)
	s.Require().NoError(err)

	got, err := Decode[batchRequest](s.registry, values)
	s.Require().NoError(err)
	s.Equal(req, got)
}

func (s *SerializerSuite) TestRegistryOrder() {
	names := make([]string, 0, 3)
	for _, st := range s.registry.Strategies() {
		names = append(names, st.Name())
	}
	s.Equal([]string{StrategyRecord, StrategyValidatedRecord, StrategySchemaModel}, names)
}

func (s *SerializerSuite) TestNewRegistrySkipsNil() {
	r := NewRegistry(nil, NewRecordStrategy(), nil)
	s.Len(r.Strategies(), 1)
}

func TestSerializer(t *testing.T) {
	suite.Run(t, new(SerializerSuite))
}
