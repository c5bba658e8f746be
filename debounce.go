package nodeflow

import "time"

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// Clock 提供单调毫秒时间源，等价于嵌入式环境的millis()。
type Clock interface {
	Millis() int64
}

// NewSystemClock 返回基于进程启动时刻的系统单调时钟。
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

type systemClock struct {
	start time.Time
}

func (c *systemClock) Millis() int64 {
	return int64(time.Since(c.start) / time.Millisecond)
}

// DecisionCallback 接收最终执行决策的回调
type DecisionCallback func(deviceId int, decision bool)

// debounceGate 按设备维护去抖与抗振荡状态。
// pending保存最近一次观察到的决策（可能尚未分发），lastTrigger保存最近一次
// 状态变化的单调时间戳。两者同生同灭，分发清理时一并删除。
type debounceGate struct {
	clock       Clock
	duration    int64 // 毫秒
	pending     map[int]bool
	lastTrigger map[int]int64
}

func newDebounceGate(clock Clock, duration int64) *debounceGate {
	return &debounceGate{
		clock:       clock,
		duration:    duration,
		pending:     make(map[int]bool),
		lastTrigger: make(map[int]int64),
	}
}

func (g *debounceGate) setDuration(duration int64) {
	g.duration = duration
}

// offer 接收终端节点产生的新决策。
// 决策在前一次确认稳定之前再次翻转时视为振荡：重置去抖窗口并压制本次分发。
// 首次观察到该设备的决策、或距上次状态变化已超过去抖窗口时，立即分发并记录。
// 其它情况（窗口内且值未变化）不做任何动作，决策保持待定。
func (g *debounceGate) offer(deviceId int, newValue bool, dispatch DecisionCallback, debugf func(format string, args ...interface{})) {
	now := g.clock.Millis()

	if prev, ok := g.pending[deviceId]; ok && prev != newValue {
		debugf("设备[%d]决策振荡，压制中间状态: %s", deviceId, FormatBool(newValue))
		g.lastTrigger[deviceId] = now
		g.pending[deviceId] = newValue
		return
	}

	last, ok := g.lastTrigger[deviceId]
	if !ok || now-last >= g.duration {
		g.lastTrigger[deviceId] = now
		g.pending[deviceId] = newValue
		if nil != dispatch {
			dispatch(deviceId, newValue)
		}
		debugf("设备[%d]决策已分发: %s", deviceId, FormatBool(newValue))
		return
	}

	debugf("设备[%d]决策待定，等待去抖窗口: %s", deviceId, FormatBool(newValue))
}

// sweep 周期性清扫待定决策。去抖窗口已过的待定决策被分发并清除状态，
// 保证停止振荡的决策即使没有新读数也终会生效。
func (g *debounceGate) sweep(dispatch DecisionCallback, debugf func(format string, args ...interface{})) {
	now := g.clock.Millis()
	for deviceId, pendingValue := range g.pending {
		if now-g.lastTrigger[deviceId] >= g.duration {
			if nil != dispatch {
				dispatch(deviceId, pendingValue)
			}
			debugf("设备[%d]待定决策生效: %s", deviceId, FormatBool(pendingValue))
			delete(g.pending, deviceId)
			delete(g.lastTrigger, deviceId)
		}
	}
}
