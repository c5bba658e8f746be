package nodeflow

import (
	"math"
	"strconv"
	"strings"

	"github.com/yoojia/go-value"
)

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// 节点间传递的数据，统一使用字符串线上格式。未连接的输入端口默认为NullData。
const NullData = "null"

// ValueKind 标记设备读数的推断类型。仅用于调试输出，不参与求值逻辑。
type ValueKind int

const (
	KindString ValueKind = iota
	KindBoolean
	KindInt
	KindDouble
)

func (k ValueKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	default:
		return "string"
	}
}

// CoerceBool 统一的布尔转换规则。所有消费方（逻辑门、终端节点、真值判断）
// 必须使用此函数，不允许各自实现转换逻辑。
// 转换规则：忽略大小写和首尾空白；"true"/"1"/"yes"/"on"为真，
// "false"/"0"/"no"/"off"为假；其它字符串按数值解析，非零为真；无法解析为假。
func CoerceBool(data string) bool {
	s := strings.ToLower(strings.TrimSpace(data))
	switch s {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); nil == err {
		return 0 != f
	}
	return false
}

// CoerceNumber 统一的数值转换规则。无法解析时返回0.0，不报错。
func CoerceNumber(data string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(data), 64)
	if nil != err {
		return 0
	}
	return f
}

// FormatBool 返回布尔值的线上字符串格式
func FormatBool(v bool) string {
	if v {
		return "true"
	} else {
		return "false"
	}
}

// FormatNumber 返回数值的线上字符串格式
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NormalizeReading 将解码后的任意类型设备读数归一化为线上字符串格式，并推断其类型标记。
func NormalizeReading(raw interface{}) (string, ValueKind) {
	switch v := raw.(type) {
	case bool:
		return FormatBool(v), KindBoolean

	case float64:
		// JSON数值解码为float64，整数值按整数格式输出
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10), KindInt
		}
		return FormatNumber(v), KindDouble

	case float32:
		return FormatNumber(float64(v)), KindDouble

	case int:
		return strconv.Itoa(v), KindInt

	case int64:
		return strconv.FormatInt(v, 10), KindInt

	case string:
		return v, KindString

	default:
		return value.Of(raw).String(), KindString
	}
}
