package nodeflow

import "math"

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// Input 节点的输入端口。Data保存当前值的线上字符串格式。
type Input struct {
	Id       int
	DataType string
	Data     string
}

// Output 节点的输出端口。DeviceId指向该输出驱动的外部设备，0表示纯内部输出。
type Output struct {
	Id       int
	DataType string
	Data     string
	DeviceId int
	ConfigId int
}

// Node 决策图中的一个节点。AvailableId选择节点的行为语义。
// 节点的端口归节点独占所有，图内所有端口Id全局唯一。
type Node struct {
	Id          int
	AvailableId int
	Kind        string
	Inputs      []Input
	Outputs     []Output
}

// Relationship 连接一个节点的输出端口与另一个节点的输入端口。
type Relationship struct {
	Id       int
	InputId  int
	OutputId int
	ConfigId int
}

// DeviceGraph 单个设备当前装载的决策图。整图替换是唯一的修改方式。
// 节点和端口以整数Id索引，不以地址引用，图可随时整体替换。
type DeviceGraph struct {
	Nodes         []Node
	Relationships []Relationship
}

// node 按Id查找节点。不存在时返回nil。
func (g *DeviceGraph) node(id int) *Node {
	for i := range g.Nodes {
		if id == g.Nodes[i].Id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// outputPort 按输出端口Id查找其所属节点与端口。
func (g *DeviceGraph) outputPort(id int) (*Node, *Output) {
	for i := range g.Nodes {
		outputs := g.Nodes[i].Outputs
		for j := range outputs {
			if id == outputs[j].Id {
				return &g.Nodes[i], &outputs[j]
			}
		}
	}
	return nil, nil
}

//// 节点行为

// 内置节点的AvailableId
const (
	AvailableIdNot          = 1
	AvailableIdAnd          = 2
	AvailableIdOr           = 3
	AvailableIdXor          = 4
	AvailableIdNor          = 5
	AvailableIdNand         = 6
	AvailableIdXnor         = 7
	AvailableIdAdd          = 8
	AvailableIdSub          = 9
	AvailableIdMul          = 10
	AvailableIdDiv          = 11
	AvailableIdPower        = 12
	AvailableIdLog          = 13
	AvailableIdSqrt         = 14
	AvailableIdAbs          = 15
	AvailableIdExp          = 16
	AvailableIdMin          = 17
	AvailableIdMax          = 18
	AvailableIdLess         = 19
	AvailableIdGreater      = 20
	AvailableIdLessEqual    = 21
	AvailableIdGreaterEqual = 22
	AvailableIdEqual        = 23
	AvailableIdNotEqual     = 24
	AvailableIdRound        = 25
	AvailableIdFloor        = 26
	AvailableIdCeil         = 27
	AvailableIdTerminal     = 28
	AvailableIdDeviceSource = 30
)

// opClass 节点行为的类别标记
type opClass int

const (
	opUnknown      opClass = iota
	opLogic                // 布尔门
	opMath                 // 数值运算与比较
	opDeviceSource         // 读取设备值表
	opTerminal             // 终端节点，决策出口
)

// nodeOp 节点行为的描述。logic与math按类别二选一，arity为参与运算的输入个数。
type nodeOp struct {
	class opClass
	arity int
	logic func(in []bool) bool
	math  func(in []float64) float64
}

func b2f(v bool) float64 {
	if v {
		return 1
	} else {
		return 0
	}
}

// opOf 返回AvailableId对应的节点行为。未识别的Id按无操作处理。
func opOf(availableId int) nodeOp {
	switch availableId {
	case AvailableIdNot:
		return nodeOp{class: opLogic, arity: 1, logic: func(in []bool) bool { return !in[0] }}
	case AvailableIdAnd:
		return nodeOp{class: opLogic, arity: 2, logic: func(in []bool) bool { return in[0] && in[1] }}
	case AvailableIdOr:
		return nodeOp{class: opLogic, arity: 2, logic: func(in []bool) bool { return in[0] || in[1] }}
	case AvailableIdXor:
		return nodeOp{class: opLogic, arity: 2, logic: func(in []bool) bool { return in[0] != in[1] }}
	case AvailableIdNor:
		return nodeOp{class: opLogic, arity: 2, logic: func(in []bool) bool { return !(in[0] || in[1]) }}
	case AvailableIdNand:
		return nodeOp{class: opLogic, arity: 2, logic: func(in []bool) bool { return !(in[0] && in[1]) }}
	case AvailableIdXnor:
		return nodeOp{class: opLogic, arity: 2, logic: func(in []bool) bool { return in[0] == in[1] }}

	case AvailableIdAdd:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return in[0] + in[1] }}
	case AvailableIdSub:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return in[0] - in[1] }}
	case AvailableIdMul:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return in[0] * in[1] }}
	case AvailableIdDiv:
		// 除零返回0，不报错
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 {
			if 0 == in[1] {
				return 0
			}
			return in[0] / in[1]
		}}
	case AvailableIdPower:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return math.Pow(in[0], in[1]) }}
	case AvailableIdLog:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Log(in[0]) }}
	case AvailableIdSqrt:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Sqrt(in[0]) }}
	case AvailableIdAbs:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Abs(in[0]) }}
	case AvailableIdExp:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Exp(in[0]) }}
	case AvailableIdMin:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return math.Min(in[0], in[1]) }}
	case AvailableIdMax:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return math.Max(in[0], in[1]) }}
	case AvailableIdLess:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return b2f(in[0] < in[1]) }}
	case AvailableIdGreater:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return b2f(in[0] > in[1]) }}
	case AvailableIdLessEqual:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return b2f(in[0] <= in[1]) }}
	case AvailableIdGreaterEqual:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return b2f(in[0] >= in[1]) }}
	case AvailableIdEqual:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return b2f(in[0] == in[1]) }}
	case AvailableIdNotEqual:
		return nodeOp{class: opMath, arity: 2, math: func(in []float64) float64 { return b2f(in[0] != in[1]) }}
	case AvailableIdRound:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Round(in[0]) }}
	case AvailableIdFloor:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Floor(in[0]) }}
	case AvailableIdCeil:
		return nodeOp{class: opMath, arity: 1, math: func(in []float64) float64 { return math.Ceil(in[0]) }}

	case AvailableIdTerminal:
		return nodeOp{class: opTerminal}
	case AvailableIdDeviceSource:
		return nodeOp{class: opDeviceSource}

	default:
		return nodeOp{class: opUnknown}
	}
}
