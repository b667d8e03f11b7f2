package serializer

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"

	"github.com/lk2023060901/quickapi-go/pkg/util/qerr"
)

// Registry 按固定顺序持有一组策略，是转换分发的唯一入口。
//
// 约定：
//   - 顺序在构造时固定，此后只读，可安全地跨端点并发共享；
//   - 编码、解码均按注册顺序逐个探测，先命中者生效；
//   - 无缓存、无每次调用级状态，正确性只依赖固定顺序与谓词互斥。
type Registry struct {
	strategies []Strategy
}

// NewRegistry 基于给定的策略顺序构造 Registry，nil 策略会被忽略。
func NewRegistry(strategies ...Strategy) *Registry {
	return &Registry{
		strategies: lo.Filter(strategies, func(s Strategy, _ int) bool { return s != nil }),
	}
}

// defaultRegistry 为进程级默认注册表，启动时构造完成后只读。
// 固定顺序：record -> validated_record -> schema_model。
var defaultRegistry = NewRegistry(
	NewRecordStrategy(),
	NewValidatedRecordStrategy(),
	NewModelStrategy(),
)

// Default 返回进程级默认 Registry。
func Default() *Registry {
	return defaultRegistry
}

// Strategies 返回策略顺序的快照，仅用于诊断。
func (r *Registry) Strategies() []Strategy {
	out := make([]Strategy, len(r.strategies))
	copy(out, r.strategies)
	return out
}

// EncoderFor 返回第一个认领该实例的策略。
func (r *Registry) EncoderFor(instance any) (Strategy, bool) {
	for _, s := range r.strategies {
		if s.CanEncode(instance) {
			return s, true
		}
	}
	return nil, false
}

// DecoderFor 返回第一个认领该声明类型的策略。
func (r *Registry) DecoderFor(declared reflect.Type) (Strategy, bool) {
	for _, s := range r.strategies {
		if s.CanDecode(declared) {
			return s, true
		}
	}
	return nil, false
}

// CanEncode 判断是否存在策略认领该实例。
func (r *Registry) CanEncode(instance any) bool {
	_, ok := r.EncoderFor(instance)
	return ok
}

// CanDecode 判断是否存在策略认领该声明类型。
func (r *Registry) CanDecode(declared reflect.Type) bool {
	_, ok := r.DecoderFor(declared)
	return ok
}

// ToMap 将实例转换为普通映射，按注册顺序取第一个适用策略。
func (r *Registry) ToMap(instance any) (map[string]any, error) {
	if instance == nil {
		return nil, qerr.WrapErrEncode("<nil>", nil, "nil instance")
	}
	s, ok := r.EncoderFor(instance)
	if !ok {
		return nil, qerr.WrapErrEncode(fmt.Sprintf("%T", instance), nil, "no strategy claims instance")
	}
	return s.Encode(instance)
}

// FromMap 将普通映射构造为声明类型的实例，按注册顺序取第一个适用策略。
func (r *Registry) FromMap(declared reflect.Type, values map[string]any) (any, error) {
	s, ok := r.DecoderFor(declared)
	if !ok {
		return nil, qerr.WrapErrDecode(typeName(declared), nil, "no strategy claims type")
	}
	return s.Decode(declared, values)
}

// ToMap 使用默认 Registry 将实例转换为普通映射。
func ToMap(instance any) (map[string]any, error) {
	return defaultRegistry.ToMap(instance)
}

// FromMap 使用默认 Registry 将普通映射构造为声明类型的实例。
func FromMap(declared reflect.Type, values map[string]any) (any, error) {
	return defaultRegistry.FromMap(declared, values)
}

// Decode 将普通映射解码为 T 的实例，取第一个适用策略。
func Decode[T any](r *Registry, values map[string]any) (T, error) {
	var zero T
	declared := reflect.TypeOf((*T)(nil)).Elem()

	out, err := r.FromMap(declared, values)
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, qerr.WrapErrDecode(typeName(declared), nil, "strategy returned unexpected type")
	}
	return v, nil
}
