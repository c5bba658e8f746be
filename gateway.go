package nodeflow

import (
	"context"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/yoojia/go-jsonx"
)

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// Gateway 把决策引擎接入MQTT总线的组件。
// 订阅图定义Topic与设备读数Topic，驱动引擎求值，并把终端决策发布到决策Topic。
// 待定决策由内部定时器周期性清扫。
type Gateway interface {
	// Startup 启动组件，开始订阅和定时清扫
	Startup()

	// Shutdown 停止组件，取消订阅
	Shutdown()

	// Engine 返回组件持有的决策引擎，供串口、Socket等本地接入方直接写入读数
	Engine() *Engine

	// PublishDecision 发布设备决策消息
	PublishDecision(deviceId int, decision bool) error
}

type GatewayOptions struct {
	// 去抖窗口，0时使用默认值
	DebounceDuration time.Duration
	// 冗余日志开关
	LogVerbose bool
	// 待定决策清扫间隔，0时取去抖窗口的四分之一（下限1秒）
	SweepInterval time.Duration
}

//// Gateway实现

type gateway struct {
	Gateway
	nodeId        string
	globals       *Globals
	engine        *Engine
	sweepInterval time.Duration
	// MQTT
	mqttRef mqtt.Client
	// Shutdown
	stopContext context.Context
	stopCancel  context.CancelFunc
}

func (gw *gateway) Engine() *Engine {
	return gw.engine
}

func (gw *gateway) Startup() {
	gw.stopContext, gw.stopCancel = context.WithCancel(context.Background())
	qos := gw.globals.MqttQoS

	gw.engine.SetDecisionCallback(func(deviceId int, decision bool) {
		if err := gw.PublishDecision(deviceId, decision); nil != err {
			log.Error("发布决策消息出错: ", err)
		}
	})

	log.Debugf("订阅图定义Topic= %s", TopicSubscribeGraphs)
	gw.mqttRef.Subscribe(TopicSubscribeGraphs, qos, func(cli mqtt.Client, msg mqtt.Message) {
		deviceId, ok := topicToGraphDevice(msg.Topic())
		if !ok {
			log.Warn("图定义Topic缺少设备Id: ", msg.Topic())
			return
		}
		if !gw.engine.LoadGraph(deviceId, msg.Payload()) {
			log.Warnf("设备[%d]决策图装载失败", deviceId)
		}
	})

	log.Debugf("订阅设备读数Topic= %s", TopicSubscribeValues)
	gw.mqttRef.Subscribe(TopicSubscribeValues, qos, func(cli mqtt.Client, msg mqtt.Message) {
		if err := gw.engine.UpdateDeviceValues(msg.Payload()); nil != err {
			log.Error("更新设备读数出错: ", err)
		}
	})

	go gw.sweepLoop()
}

func (gw *gateway) sweepLoop() {
	interval := gw.sweepInterval
	if interval <= 0 {
		interval = DefaultDebounceDuration / 4
	}
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			gw.engine.ProcessPendingChanges()

		case <-gw.stopContext.Done():
			return
		}
	}
}

func (gw *gateway) PublishDecision(deviceId int, decision bool) error {
	gw.checkReady()
	payload := jsonx.NewFatJSON()
	payload.Field("deviceId", deviceId)
	payload.Field("decision", decision)
	payload.Field("node", gw.nodeId)
	payload.Field("ts", time.Now().UnixNano()/int64(time.Millisecond))
	token := gw.mqttRef.Publish(
		topicOfDecision(deviceId),
		gw.globals.MqttQoS,
		gw.globals.MqttRetained,
		payload.Bytes())
	if token.Wait() && nil != token.Error() {
		return errors.WithMessage(token.Error(), "发送决策消息出错")
	} else {
		return nil
	}
}

func (gw *gateway) Shutdown() {
	gw.mqttRef.Unsubscribe(TopicSubscribeGraphs, TopicSubscribeValues)
	gw.stopCancel()
}

func (gw *gateway) checkReady() {
	if nil == gw.stopCancel || nil == gw.stopContext {
		log.Panic("Gateway未启动，须调用Startup()/Shutdown()")
	}
}
