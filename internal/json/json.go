package json

import (
	"github.com/bytedance/sonic"
)

// api 为进程内统一的 JSON 编解码配置。
//
// 采用 sonic 的标准兼容模式，行为与 encoding/json 对齐，
// 避免不同包之间出现细微的编解码差异。
var api = sonic.ConfigStd

// Marshal 将任意对象编码为 JSON 字节序列。
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal 将 JSON 字节序列解码到目标对象。
//
// v 通常为指针类型，用于接收解码结果。
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// ToMap 将任意对象投影为普通映射（map[string]any）。
//
// 实现方式为一次编码 + 一次解码，可以递归处理嵌套结构体、
// 结构体切片等任意层级的组合，键名遵循 json tag。
func ToMap(v any) (map[string]any, error) {
	data, err := api.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if err := api.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromMap 将普通映射解码到目标对象。
//
// 与 ToMap 相反方向，同样通过 JSON 往返完成，m 中的键名需与
// 目标对象的 json tag 对应。
func FromMap(m map[string]any, v any) error {
	data, err := api.Marshal(m)
	if err != nil {
		return err
	}
	return api.Unmarshal(data, v)
}
