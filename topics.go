package nodeflow

import (
	"strconv"
	"strings"
)

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

const (
	prefixGraphs    = "$NodeFlow/graphs/"
	prefixValues    = "$NodeFlow/values"
	prefixDecisions = "$NodeFlow/decisions/"
	prefixOffline   = "$NodeFlow/offline/"

	TopicSubscribeGraphs = prefixGraphs + "+"
	TopicSubscribeValues = prefixValues
)

// topicOfDecision 返回设备决策消息的发布Topic
func topicOfDecision(deviceId int) string {
	return prefixDecisions + strconv.Itoa(deviceId)
}

func topicOfOffline(nodeId string) string {
	return prefixOffline + nodeId
}

// topicToGraphDevice 解析图定义Topic尾部的设备Id
func topicToGraphDevice(mqttRawTopic string) (int, bool) {
	if !strings.HasPrefix(mqttRawTopic, prefixGraphs) {
		return 0, false
	}
	deviceId, err := strconv.Atoi(mqttRawTopic[len(prefixGraphs):])
	if nil != err {
		return 0, false
	}
	return deviceId, true
}
