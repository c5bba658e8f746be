package nodeflow

import "testing"

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

func TestCoerceBool(t *testing.T) {
	trueCases := []string{"true", "TRUE", " True ", "1", "yes", "YES", "on", " ON ", "3.14", "-2", "0.5"}
	for _, s := range trueCases {
		if !CoerceBool(s) {
			t.Error("应当为真: ", s)
		}
	}

	falseCases := []string{"false", "False", "0", "no", "NO", "off", " OFF ", "", "null", "0.0", "abc", "tru"}
	for _, s := range falseCases {
		if CoerceBool(s) {
			t.Error("应当为假: ", s)
		}
	}
}

func TestCoerceBoolRoundTrip(t *testing.T) {
	samples := []string{"true", "false", "1", "0", "yes", "off", "2.5", "null", "hello", " ON ", "-1", ""}
	for _, s := range samples {
		first := CoerceBool(s)
		if CoerceBool(FormatBool(first)) != first {
			t.Error("布尔转换不满足往返一致性: ", s)
		}
	}
}

func TestCoerceNumber(t *testing.T) {
	if 3.14 != CoerceNumber("3.14") {
		t.Error("3.14")
	}
	if -2 != CoerceNumber(" -2 ") {
		t.Error("-2")
	}
	if 0 != CoerceNumber("null") {
		t.Error("无法解析的值应当返回0")
	}
	if 0 != CoerceNumber("") {
		t.Error("空字符串应当返回0")
	}
}

func TestNormalizeReading(t *testing.T) {
	if wire, kind := NormalizeReading(true); "true" != wire || KindBoolean != kind {
		t.Error("布尔读数归一化出错: ", wire, kind)
	}
	// JSON数值解码为float64，整数值按整数输出
	if wire, kind := NormalizeReading(float64(42)); "42" != wire || KindInt != kind {
		t.Error("整数读数归一化出错: ", wire, kind)
	}
	if wire, kind := NormalizeReading(3.5); "3.5" != wire || KindDouble != kind {
		t.Error("浮点读数归一化出错: ", wire, kind)
	}
	if wire, kind := NormalizeReading("abc"); "abc" != wire || KindString != kind {
		t.Error("字符串读数归一化出错: ", wire, kind)
	}
	if wire, kind := NormalizeReading(int64(7)); "7" != wire || KindInt != kind {
		t.Error("Int64读数归一化出错: ", wire, kind)
	}
}
