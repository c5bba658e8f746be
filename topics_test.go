package nodeflow

import "testing"

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

func TestTopicToGraphDevice(t *testing.T) {
	if deviceId, ok := topicToGraphDevice("$NodeFlow/graphs/42"); !ok || 42 != deviceId {
		t.Error("解析设备Id出错: ", deviceId, ok)
	}
	if _, ok := topicToGraphDevice("$NodeFlow/graphs/abc"); ok {
		t.Error("非数字设备Id应当解析失败")
	}
	if _, ok := topicToGraphDevice("$NodeFlow/values"); ok {
		t.Error("非图定义Topic应当解析失败")
	}
}

func TestTopicOfDecision(t *testing.T) {
	if "$NodeFlow/decisions/7" != topicOfDecision(7) {
		t.Error("决策Topic不符: ", topicOfDecision(7))
	}
}
