package nodeflow

import "testing"

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// gateNode 构造一个输入值已就位的双输入门节点图
func gateNode(availableId int, in0, in1 string) *DeviceGraph {
	return &DeviceGraph{
		Nodes: []Node{
			{
				Id:          1,
				AvailableId: availableId,
				Inputs:      []Input{{Id: 101, Data: in0}, {Id: 102, Data: in1}},
				Outputs:     []Output{{Id: 103, Data: NullData}},
			},
		},
	}
}

func TestLogicGateTable(t *testing.T) {
	cases := []struct {
		availableId int
		in0, in1    string
		expect      bool
	}{
		{AvailableIdAnd, "true", "false", false},
		{AvailableIdAnd, "true", "true", true},
		{AvailableIdNand, "true", "false", true},
		{AvailableIdXor, "true", "true", false},
		{AvailableIdXor, "true", "false", true},
		{AvailableIdOr, "false", "false", false},
		{AvailableIdNor, "false", "false", true},
		{AvailableIdXnor, "true", "true", true},
	}
	for _, c := range cases {
		graph := gateNode(c.availableId, c.in0, c.in1)
		if got := evaluateNode(graph, nil, 1); got != c.expect {
			t.Errorf("门[%d](%s, %s): 期望 %v, 实际 %v", c.availableId, c.in0, c.in1, c.expect, got)
		}
		if graph.Nodes[0].Outputs[0].Data != FormatBool(c.expect) {
			t.Errorf("门[%d]输出端口未写入结果: %s", c.availableId, graph.Nodes[0].Outputs[0].Data)
		}
	}
}

func TestLogicGateNot(t *testing.T) {
	graph := &DeviceGraph{
		Nodes: []Node{
			{Id: 1, AvailableId: AvailableIdNot, Inputs: []Input{{Id: 101, Data: "false"}}, Outputs: []Output{{Id: 102, Data: NullData}}},
		},
	}
	if !evaluateNode(graph, nil, 1) {
		t.Error("NOT(false) 应当为真")
	}
}

func TestMathNodes(t *testing.T) {
	cases := []struct {
		availableId int
		in0, in1    string
		expect      string
	}{
		{AvailableIdAdd, "2", "3", "5"},
		{AvailableIdSub, "2", "3", "-1"},
		{AvailableIdMul, "2.5", "4", "10"},
		{AvailableIdDiv, "5", "0", "0"}, // 除零返回0，不报错
		{AvailableIdDiv, "9", "3", "3"},
		{AvailableIdPower, "2", "10", "1024"},
		{AvailableIdMin, "2", "3", "2"},
		{AvailableIdMax, "2", "3", "3"},
		{AvailableIdLess, "2", "3", "1"},
		{AvailableIdGreater, "2", "3", "0"},
		{AvailableIdLessEqual, "3", "3", "1"},
		{AvailableIdGreaterEqual, "2", "3", "0"},
		{AvailableIdEqual, "3", "3", "1"},
		{AvailableIdNotEqual, "3", "3", "0"},
	}
	for _, c := range cases {
		graph := gateNode(c.availableId, c.in0, c.in1)
		evaluateNode(graph, nil, 1)
		if got := graph.Nodes[0].Outputs[0].Data; got != c.expect {
			t.Errorf("运算[%d](%s, %s): 期望 %s, 实际 %s", c.availableId, c.in0, c.in1, c.expect, got)
		}
	}
}

func TestMathUnaryNodes(t *testing.T) {
	cases := []struct {
		availableId int
		in0         string
		expect      string
	}{
		{AvailableIdSqrt, "9", "3"},
		{AvailableIdAbs, "-2.5", "2.5"},
		{AvailableIdRound, "2.6", "3"},
		{AvailableIdFloor, "2.6", "2"},
		{AvailableIdCeil, "2.1", "3"},
		{AvailableIdLog, "1", "0"},
		{AvailableIdExp, "0", "1"},
	}
	for _, c := range cases {
		graph := &DeviceGraph{
			Nodes: []Node{
				{Id: 1, AvailableId: c.availableId, Inputs: []Input{{Id: 101, Data: c.in0}}, Outputs: []Output{{Id: 102, Data: NullData}}},
			},
		}
		evaluateNode(graph, nil, 1)
		if got := graph.Nodes[0].Outputs[0].Data; got != c.expect {
			t.Errorf("运算[%d](%s): 期望 %s, 实际 %s", c.availableId, c.in0, c.expect, got)
		}
	}
}

func TestDeviceSourceNode(t *testing.T) {
	graph := &DeviceGraph{
		Nodes: []Node{
			{Id: 1, AvailableId: AvailableIdDeviceSource, Outputs: []Output{
				{Id: 101, Data: NullData, DeviceId: 7},
				{Id: 102, Data: NullData, DeviceId: 8},
			}},
		},
	}
	table := map[int]string{7: "on", 8: "23.5"}
	evaluateNode(graph, table, 1)
	if "on" != graph.Nodes[0].Outputs[0].Data {
		t.Error("设备值未拷贝到输出端口: ", graph.Nodes[0].Outputs[0].Data)
	}
	if "23.5" != graph.Nodes[0].Outputs[1].Data {
		t.Error("设备值未拷贝到输出端口: ", graph.Nodes[0].Outputs[1].Data)
	}
}

func TestDeviceSourceMissingEntryKeepsOutput(t *testing.T) {
	graph := &DeviceGraph{
		Nodes: []Node{
			{Id: 1, AvailableId: AvailableIdDeviceSource, Outputs: []Output{{Id: 101, Data: "stale", DeviceId: 99}}},
		},
	}
	evaluateNode(graph, map[int]string{}, 1)
	if "stale" != graph.Nodes[0].Outputs[0].Data {
		t.Error("设备值表无记录时输出端口应当保持原值: ", graph.Nodes[0].Outputs[0].Data)
	}
}

// 设备源 -> 非门 -> 终端 的完整链路
func chainGraph() *DeviceGraph {
	return &DeviceGraph{
		Nodes: []Node{
			{Id: 1, AvailableId: AvailableIdDeviceSource, Outputs: []Output{{Id: 101, Data: NullData, DeviceId: 7}}},
			{Id: 2, AvailableId: AvailableIdNot, Inputs: []Input{{Id: 201, Data: NullData}}, Outputs: []Output{{Id: 202, Data: NullData}}},
			{Id: 3, AvailableId: AvailableIdTerminal, Inputs: []Input{{Id: 301, Data: NullData}}},
		},
		Relationships: []Relationship{
			{Id: 11, InputId: 201, OutputId: 101},
			{Id: 12, InputId: 301, OutputId: 202},
		},
	}
}

func TestTerminalNodeTakesInputValue(t *testing.T) {
	graph := chainGraph()
	table := map[int]string{7: "false"}
	// 终端节点的权威结果取自其首个输入端口
	if !evaluateNode(graph, table, 3) {
		t.Error("NOT(false) 经终端节点应当为真")
	}
	if "true" != graph.Nodes[2].Inputs[0].Data {
		t.Error("终端节点输入端口未更新: ", graph.Nodes[2].Inputs[0].Data)
	}

	table[7] = "true"
	if evaluateNode(graph, table, 3) {
		t.Error("NOT(true) 经终端节点应当为假")
	}
}

func TestEvaluateIdempotentWithinPass(t *testing.T) {
	graph := chainGraph()
	table := map[int]string{7: "false"}
	first := evaluateNode(graph, table, 3)
	second := evaluateNode(graph, table, 3)
	if first != second {
		t.Error("同一读数下重复求值结果应当一致")
	}
	if "true" != graph.Nodes[1].Outputs[0].Data {
		t.Error("非门输出不符: ", graph.Nodes[1].Outputs[0].Data)
	}
}

func TestUnknownNodeKindIsInert(t *testing.T) {
	graph := &DeviceGraph{
		Nodes: []Node{
			{Id: 1, AvailableId: 999, Inputs: []Input{{Id: 101, Data: "true"}}, Outputs: []Output{{Id: 102, Data: NullData}}},
			{Id: 2, AvailableId: AvailableIdTerminal, Inputs: []Input{{Id: 201, Data: "true"}}},
		},
		Relationships: []Relationship{
			{Id: 11, InputId: 201, OutputId: 102},
		},
	}
	// 未识别的节点不产生输出；终端节点保留其已有默认值
	if !evaluateNode(graph, nil, 2) {
		t.Error("下游节点应当使用已有值继续求值")
	}
	if NullData != graph.Nodes[0].Outputs[0].Data {
		t.Error("未识别节点的输出端口不应当改变: ", graph.Nodes[0].Outputs[0].Data)
	}
}

func TestEvaluateMissingTargetNode(t *testing.T) {
	graph := chainGraph()
	if evaluateNode(graph, nil, 404) {
		t.Error("缺失的目标节点应当退化为false")
	}
}
