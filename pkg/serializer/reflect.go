package serializer

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var modelType = reflect.TypeOf((*Model)(nil)).Elem()

// typeName 返回用于错误信息的稳定类型名（解包指针后的 pkg.Type 形式）。
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// structType 解包指针后返回底层结构体类型。
func structType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	return t, true
}

// implementsModel 判断声明类型（或其指针形式）是否实现了 Model。
// 值类型通常以指针接收者实现 Validate，这里两种形式都探测。
func implementsModel(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(modelType) {
		return true
	}
	if t.Kind() == reflect.Pointer {
		return implementsModel(t.Elem())
	}
	return reflect.PointerTo(t).Implements(modelType)
}

// hasValidateTags 递归探测结构体（含嵌套结构体与其切片）是否携带 validate 标签。
func hasValidateTags(t reflect.Type) bool {
	s, ok := structType(t)
	if !ok {
		return false
	}
	return scanValidateTags(s, map[reflect.Type]bool{})
}

func scanValidateTags(s reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[s] {
		return false
	}
	seen[s] = true

	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag := f.Tag.Get("validate"); tag != "" && tag != "-" {
			return true
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer || ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && scanValidateTags(ft, seen) {
			return true
		}
	}
	return false
}

// populate 将映射逐字段填充到 out 指向的结构体，键名遵循 json tag。
// weak 为 true 时开启弱类型输入纠偏（"42" -> 42 等）。
func populate(values map[string]any, out any, weak bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: weak,
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

// checkRequired 校验映射覆盖了结构体的全部必填键，并递归进入
// 嵌套结构体与结构体切片。
//
// 必填的判定跟随编码侧：json 标签带 omitempty 的字段在零值时
// 不会出现在编码输出里，因此视为可选，缺键不算错误。
func checkRequired(s reflect.Type, values map[string]any) error {
	var missing []string
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.IsExported() {
			continue
		}
		key, optional, skip := jsonKey(f)
		if skip {
			continue
		}

		val, present := values[key]
		if !present {
			if !optional {
				missing = append(missing, key)
			}
			continue
		}
		if err := checkRequiredValue(f.Type, val); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func checkRequiredValue(ft reflect.Type, val any) error {
	for ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	switch ft.Kind() {
	case reflect.Struct:
		if m, ok := val.(map[string]any); ok {
			return checkRequired(ft, m)
		}
	case reflect.Slice, reflect.Array:
		elems, ok := val.([]any)
		if !ok {
			return nil
		}
		et := ft.Elem()
		for et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		if et.Kind() != reflect.Struct {
			return nil
		}
		for _, e := range elems {
			if m, ok := e.(map[string]any); ok {
				if err := checkRequired(et, m); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// jsonKey 解析字段的映射键名与 omitempty 可选标记。
func jsonKey(f reflect.StructField) (key string, optional bool, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			optional = true
		}
	}
	return name, optional, false
}

// materialize 将新构造的 *T 按声明类型还原为 T 或 *T。
func materialize(ptr reflect.Value, declared reflect.Type) any {
	if declared.Kind() == reflect.Pointer {
		return ptr.Interface()
	}
	return ptr.Elem().Interface()
}
