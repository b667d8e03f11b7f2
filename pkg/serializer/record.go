package serializer

import (
	"fmt"
	"reflect"

	"github.com/lk2023060901/quickapi-go/internal/json"
	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// RecordStrategy 处理普通结构体记录：不携带 validate 标签、也未实现 Model
// 的结构体（或其指针）。
//
// 解码语义是严格的：映射必须覆盖记录的全部必填字段（json 标签未声明
// omitempty 的导出字段），缺键与类型不匹配均视为解码失败。omitempty
// 字段为可选：编码侧省略的零值键不会反过来拒绝本约定自己的输出。
// JSON 数值（float64）落到整型字段时按整数接收。
type RecordStrategy struct{}

// 编译期断言：确保 RecordStrategy 实现了 Strategy 接口。
var _ Strategy = (*RecordStrategy)(nil)

// NewRecordStrategy 创建普通记录策略。
func NewRecordStrategy() *RecordStrategy {
	return &RecordStrategy{}
}

func (*RecordStrategy) Name() string {
	return StrategyRecord
}

func (*RecordStrategy) CanEncode(instance any) bool {
	return isRecordType(reflect.TypeOf(instance))
}

func (*RecordStrategy) CanDecode(declared reflect.Type) bool {
	return isRecordType(declared)
}

func (s *RecordStrategy) Encode(instance any) (map[string]any, error) {
	if !s.CanEncode(instance) {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), nil, "record: instance not a plain record")
	}
	values, err := json.ToMap(instance)
	if err != nil {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), err)
	}
	return values, nil
}

func (s *RecordStrategy) Decode(declared reflect.Type, values map[string]any) (any, error) {
	base, ok := structType(declared)
	if !ok || !s.CanDecode(declared) {
		return nil, qerr.WrapErrDecode(typeName(declared), nil, "record: type not a plain record")
	}

	if err := checkRequired(base, values); err != nil {
		return nil, qerr.WrapErrDecode(typeName(declared), err, "record: decode failed")
	}
	out := reflect.New(base)
	if err := populate(values, out.Interface(), false); err != nil {
		return nil, qerr.WrapErrDecode(typeName(declared), err, "record: decode failed")
	}
	return materialize(out, declared), nil
}

func isRecordType(t reflect.Type) bool {
	if _, ok := structType(t); !ok {
		return false
	}
	return !implementsModel(t) && !hasValidateTags(t)
}
