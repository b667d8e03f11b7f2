package serializer

import (
	"fmt"
	"reflect"

	"github.com/lk2023060901/quickapi-go/internal/json"
	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// ModelStrategy 处理自校验模型：实现了 Model 接口的结构体（或其指针）。
//
// 解码语义对齐“schema 校验 + 自动纠偏”的建模约定：
//   - 解码前若实现 Defaulter 则先填充默认值，映射中的键随后覆盖；
//   - 弱类型输入自动纠偏（"42" -> 42、1 -> true 等）；
//   - 解码完成后在整棵对象树上自内向外执行 Validate。
type ModelStrategy struct{}

// 编译期断言：确保 ModelStrategy 实现了 Strategy 接口。
var _ Strategy = (*ModelStrategy)(nil)

// NewModelStrategy 创建自校验模型策略。
func NewModelStrategy() *ModelStrategy {
	return &ModelStrategy{}
}

func (*ModelStrategy) Name() string {
	return StrategySchemaModel
}

func (*ModelStrategy) CanEncode(instance any) bool {
	t := reflect.TypeOf(instance)
	if _, ok := structType(t); !ok {
		return false
	}
	return implementsModel(t)
}

func (*ModelStrategy) CanDecode(declared reflect.Type) bool {
	if _, ok := structType(declared); !ok {
		return false
	}
	return implementsModel(declared)
}

func (s *ModelStrategy) Encode(instance any) (map[string]any, error) {
	if !s.CanEncode(instance) {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), nil, "schema_model: instance not a model")
	}
	values, err := json.ToMap(instance)
	if err != nil {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), err)
	}
	return values, nil
}

func (s *ModelStrategy) Decode(declared reflect.Type, values map[string]any) (any, error) {
	base, ok := structType(declared)
	if !ok || !s.CanDecode(declared) {
		return nil, qerr.WrapErrDecode(typeName(declared), nil, "schema_model: type not a model")
	}

	out := reflect.New(base)
	if d, ok := out.Interface().(Defaulter); ok {
		d.SetDefaults()
	}
	if err := populate(values, out.Interface(), true); err != nil {
		return nil, qerr.WrapErrDecode(typeName(declared), err, "schema_model: decode failed")
	}
	if err := validateTree(out.Elem()); err != nil {
		return nil, qerr.WrapErrDecode(typeName(declared), err, "schema_model: validation failed")
	}
	return materialize(out, declared), nil
}

// validateTree 自内向外校验对象树：先嵌套字段、切片元素，后对象自身。
func validateTree(v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return validateTree(v.Elem())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := validateTree(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			if err := validateTree(v.Field(i)); err != nil {
				return err
			}
		}
		return callValidate(v)
	default:
		return nil
	}
}

func callValidate(v reflect.Value) error {
	if m, ok := v.Interface().(Model); ok {
		return m.Validate()
	}
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Model); ok {
			return m.Validate()
		}
	}
	return nil
}
