package nodeflow

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
)

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

const (
	// DefaultDebounceDuration 默认去抖窗口
	DefaultDebounceDuration = time.Millisecond * 10000
)

// EngineOptions 引擎配置参数
type EngineOptions struct {
	DebounceDuration time.Duration // 去抖窗口，0或未设置时使用默认值
	LogVerbose       bool          // 是否输出冗余调试日志
	Clock            Clock         // 时间源，未设置时使用系统单调时钟
}

// Engine 决策引擎。按设备装载决策图，接收设备读数并触发求值，
// 终端节点的决策经去抖网关后通过回调分发。
// 引擎内部为单线程模型，入口方法以互斥锁串行化外部调用。
// 引擎实例之间互不共享状态，可同时构建多个独立实例。
type Engine struct {
	mutex    sync.Mutex
	graphs   map[int]*DeviceGraph
	values   map[int]string
	kinds    map[int]ValueKind
	gate     *debounceGate
	callback DecisionCallback
	verbose  bool
}

// NewEngine 创建决策引擎实例
func NewEngine(opts EngineOptions) *Engine {
	duration := opts.DebounceDuration
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	clock := opts.Clock
	if nil == clock {
		clock = NewSystemClock()
	}
	return &Engine{
		graphs:  make(map[int]*DeviceGraph),
		values:  make(map[int]string),
		kinds:   make(map[int]ValueKind),
		gate:    newDebounceGate(clock, int64(duration/time.Millisecond)),
		verbose: opts.LogVerbose,
	}
}

// SetDecisionCallback 注册决策回调。重复注册时丢弃之前的回调。
func (e *Engine) SetDecisionCallback(callback DecisionCallback) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.callback = callback
}

// SetDebounceDuration 设置去抖窗口
func (e *Engine) SetDebounceDuration(duration time.Duration) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.gate.setDuration(int64(duration / time.Millisecond))
	e.debugf("去抖窗口设置为 %d 毫秒", int64(duration/time.Millisecond))
}

// SetLogVerbose 设置冗余调试日志开关
func (e *Engine) SetLogVerbose(enabled bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.verbose = enabled
}

// LoadGraph 解析并装载指定设备的决策图定义，返回是否装载成功。
// 同一设备的旧图被整体替换；解析失败时不改动已有状态。
func (e *Engine) LoadGraph(deviceId int, payload []byte) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	graph, err := decodeGraph(payload, e.debugf)
	if nil != err {
		log.Error("装载决策图出错: ", err)
		return false
	}
	e.graphs[deviceId] = graph
	e.debugf("设备[%d]决策图装载完成: 节点= %d, 连接= %d",
		deviceId, len(graph.Nodes), len(graph.Relationships))
	return true
}

// 设备读数的线上JSON结构：{ sensorArray: [{deviceId, value}...] }
type wireSensorUpdate struct {
	SensorArray []wireSensorReading `json:"sensorArray"`
}

type wireSensorReading struct {
	DeviceId int         `json:"deviceId"`
	Value    interface{} `json:"value"`
}

// UpdateDeviceValues 解析设备读数更新，写入设备值表后触发所有已装载设备图的重新求值。
// 读数值可以是布尔、整数、浮点或字符串，统一归一化为线上字符串格式。
func (e *Engine) UpdateDeviceValues(payload []byte) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	update := new(wireSensorUpdate)
	if err := json.Unmarshal(payload, update); nil != err {
		return errors.WithMessage(err, "设备读数JSON解析失败")
	}
	for _, reading := range update.SensorArray {
		wire, kind := NormalizeReading(reading.Value)
		e.values[reading.DeviceId] = wire
		e.kinds[reading.DeviceId] = kind
		e.debugf("设备值更新: Id= %d, Value= %s, Kind= %s", reading.DeviceId, wire, kind)
	}
	e.evaluateAll()
	return nil
}

// OfferReading 写入单个设备读数并触发重新求值。供串口、Socket等非JSON接入方使用。
func (e *Engine) OfferReading(deviceId int, raw interface{}) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	wire, kind := NormalizeReading(raw)
	e.values[deviceId] = wire
	e.kinds[deviceId] = kind
	e.debugf("设备值更新: Id= %d, Value= %s, Kind= %s", deviceId, wire, kind)
	e.evaluateAll()
}

// ProcessPendingChanges 清扫去抖窗口已过的待定决策并分发。由外部定时驱动。
func (e *Engine) ProcessPendingChanges() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.gate.sweep(e.callback, e.debugf)
}

// evaluateAll 对每个已装载设备图按拓扑序求值。
// 含环的图跳过本轮求值，其它设备不受影响。
func (e *Engine) evaluateAll() {
	for deviceId, graph := range e.graphs {
		order := topologicalOrder(graph)
		if nil == order {
			if len(graph.Relationships) > 0 {
				log.Warnf("设备[%d]决策图存在环，跳过本轮求值", deviceId)
			}
			continue
		}
		e.debugf("设备[%d]求值顺序: %v", deviceId, order)
		for _, nodeId := range order {
			decision := evaluateNode(graph, e.values, nodeId)
			node := graph.node(nodeId)
			if nil != node && AvailableIdTerminal == node.AvailableId {
				e.gate.offer(deviceId, decision, e.callback, e.debugf)
			}
		}
	}
}

// PrintDecodedData 输出指定设备已装载决策图的调试信息
func (e *Engine) PrintDecodedData(deviceId int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	graph, ok := e.graphs[deviceId]
	if !ok {
		log.Debugf("设备[%d]未装载决策图", deviceId)
		return
	}
	log.Debugf("设备[%d]决策图:", deviceId)
	for _, node := range graph.Nodes {
		log.Debugf("  节点 Id= %d, AvailableId= %d, Kind= %s, 输入= %d, 输出= %d",
			node.Id, node.AvailableId, node.Kind, len(node.Inputs), len(node.Outputs))
		for _, input := range node.Inputs {
			log.Debugf("    输入端口 Id= %d, Data= %s", input.Id, input.Data)
		}
		for _, output := range node.Outputs {
			log.Debugf("    输出端口 Id= %d, Data= %s, DeviceId= %d", output.Id, output.Data, output.DeviceId)
		}
	}
	for _, rel := range graph.Relationships {
		log.Debugf("  连接 Id= %d, Input= %d, Output= %d", rel.Id, rel.InputId, rel.OutputId)
	}
	for id, wire := range e.values {
		log.Debugf("  设备值 Id= %d, Value= %s, Kind= %s", id, wire, e.kinds[id])
	}
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.verbose {
		log.Debugf(format, args...)
	}
}
