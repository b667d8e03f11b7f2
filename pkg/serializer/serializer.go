// Package serializer 实现“普通映射 <-> 强类型值”的多态转换分发层。
//
// 设计目标：
//   - 调用方只面对 ToMap / FromMap 两个入口，无需关心值对象采用哪种建模约定；
//   - 三种建模约定各由一个 Strategy 承担：普通记录（record）、带校验标签的
//     记录（validated_record）、自校验模型（schema_model）；
//   - 按固定注册顺序逐个探测，先命中者生效；三个策略的判定条件互斥，
//     同一类型不会被多个策略同时认领；
//   - 转换失败时返回携带目标类型名的结构化错误，便于上层定位。
package serializer

import (
	"reflect"
)

// 策略名常量，用于错误信息与日志中标识命中的约定。
const (
	StrategyRecord          = "record"
	StrategyValidatedRecord = "validated_record"
	StrategySchemaModel     = "schema_model"
)

// Strategy 抽象了单一建模约定的编解码能力。
//
// 约定：
//   - CanEncode/CanDecode 为纯谓词，不产生副作用；
//   - Encode 将实例投影为普通映射，递归处理嵌套类型值与类型值切片；
//   - Decode 依据声明类型逐字段构造实例，并执行该约定自有的校验；
//   - 实现必须无每次调用级的可变状态，可安全并发使用。
type Strategy interface {
	// Name 返回策略的稳定标识。
	Name() string

	// CanEncode 判断实例的运行时类型是否属于本约定。
	CanEncode(instance any) bool

	// CanDecode 判断声明类型是否属于本约定。
	CanDecode(declared reflect.Type) bool

	// Encode 将实例投影为普通映射。
	Encode(instance any) (map[string]any, error)

	// Decode 将普通映射构造为声明类型的实例。
	Decode(declared reflect.Type, values map[string]any) (any, error)
}

// Model 标识自校验模型约定（schema_model）。
//
// 实现该接口的类型在解码时享受弱类型输入的自动纠偏（如 "42" -> 42），
// 解码完成后 Validate 会在整棵对象树上自内向外执行。
type Model interface {
	// Validate 校验对象自身的字段约束，失败时返回描述性错误。
	Validate() error
}

// Defaulter 为 Model 的可选扩展：解码前先填充字段默认值，
// 映射中出现的键随后会覆盖默认值。
type Defaulter interface {
	SetDefaults()
}
