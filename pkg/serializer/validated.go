package serializer

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/lk2023060901/quickapi-go/internal/json"
	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// validate 为进程内共享的校验器实例，可安全并发使用。
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidatedRecordStrategy 处理带运行时字段校验器的结构体记录：
// 至少携带一个 validate 标签且未实现 Model 的结构体（或其指针）。
//
// 解码先逐字段填充，再整体执行 validate 标签声明的约束：
// required 负责必填检查，lt/min/max 等负责取值约束。
type ValidatedRecordStrategy struct{}

// 编译期断言：确保 ValidatedRecordStrategy 实现了 Strategy 接口。
var _ Strategy = (*ValidatedRecordStrategy)(nil)

// NewValidatedRecordStrategy 创建带校验记录策略。
func NewValidatedRecordStrategy() *ValidatedRecordStrategy {
	return &ValidatedRecordStrategy{}
}

func (*ValidatedRecordStrategy) Name() string {
	return StrategyValidatedRecord
}

func (*ValidatedRecordStrategy) CanEncode(instance any) bool {
	return isValidatedRecordType(reflect.TypeOf(instance))
}

func (*ValidatedRecordStrategy) CanDecode(declared reflect.Type) bool {
	return isValidatedRecordType(declared)
}

func (s *ValidatedRecordStrategy) Encode(instance any) (map[string]any, error) {
	if !s.CanEncode(instance) {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), nil, "validated_record: instance not a validated record")
	}
	values, err := json.ToMap(instance)
	if err != nil {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), err)
	}
	return values, nil
}

func (s *ValidatedRecordStrategy) Decode(declared reflect.Type, values map[string]any) (any, error) {
	base, ok := structType(declared)
	if !ok || !s.CanDecode(declared) {
		return nil, qerr.WrapErrDecode(typeName(declared), nil, "validated_record: type not a validated record")
	}

	out := reflect.New(base)
	if err := populate(values, out.Interface(), false); err != nil {
		return nil, qerr.WrapErrDecode(typeName(declared), err, "validated_record: decode failed")
	}
	if err := validate.Struct(out.Interface()); err != nil {
		return nil, qerr.WrapErrDecode(typeName(declared), err, "validated_record: constraint violated")
	}
	return materialize(out, declared), nil
}

func isValidatedRecordType(t reflect.Type) bool {
	if _, ok := structType(t); !ok {
		return false
	}
	return !implementsModel(t) && hasValidateTags(t)
}
