package nodeflow

import "testing"

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

func nopDebugf(format string, args ...interface{}) {}

func TestDecodeGraph(t *testing.T) {
	payload := []byte(`{
		"data": {
			"n": [
				{"id": 1, "aId": 30, "k": "DeviceSource", "i": [], "o": [{"id": 101, "dt": "boolean", "dId": 7, "cId": 0}]},
				{"id": 2, "aId": 1, "k": "NOT", "i": [{"id": 201, "dt": "boolean"}], "o": [{"id": 202, "dt": "boolean", "dId": 0, "cId": 0}]}
			],
			"r": [
				{"id": 11, "i": 201, "o": 101, "c": 0}
			]
		}
	}`)
	graph, err := decodeGraph(payload, nopDebugf)
	if nil != err {
		t.Fatal("解析出错: ", err)
	}
	if 2 != len(graph.Nodes) {
		t.Fatal("节点数不符: ", len(graph.Nodes))
	}
	if 1 != len(graph.Relationships) {
		t.Fatal("连接数不符: ", len(graph.Relationships))
	}
	// 未提供初始值的输入端口默认为NullData
	if NullData != graph.Nodes[1].Inputs[0].Data {
		t.Error("输入端口默认值不符: ", graph.Nodes[1].Inputs[0].Data)
	}
}

func TestDecodeGraphExplicitInputData(t *testing.T) {
	payload := []byte(`{
		"data": {
			"n": [
				{"id": 1, "aId": 1, "k": "NOT", "i": [{"id": 101, "dt": "boolean", "d": "true"}], "o": [{"id": 102, "dt": "boolean", "dId": 0, "cId": 0}]}
			],
			"r": []
		}
	}`)
	graph, err := decodeGraph(payload, nopDebugf)
	if nil != err {
		t.Fatal("解析出错: ", err)
	}
	if "true" != graph.Nodes[0].Inputs[0].Data {
		t.Error("显式初始值未生效: ", graph.Nodes[0].Inputs[0].Data)
	}
}

func TestDecodeGraphDropsDanglingRelationship(t *testing.T) {
	payload := []byte(`{
		"data": {
			"n": [
				{"id": 1, "aId": 30, "k": "DeviceSource", "i": [], "o": [{"id": 101, "dt": "boolean", "dId": 7, "cId": 0}]},
				{"id": 2, "aId": 1, "k": "NOT", "i": [{"id": 201, "dt": "boolean"}], "o": [{"id": 202, "dt": "boolean", "dId": 0, "cId": 0}]}
			],
			"r": [
				{"id": 11, "i": 201, "o": 101, "c": 0},
				{"id": 12, "i": 999, "o": 101, "c": 0},
				{"id": 13, "i": 201, "o": 888, "c": 0}
			]
		}
	}`)
	graph, err := decodeGraph(payload, nopDebugf)
	if nil != err {
		t.Fatal("解析出错: ", err)
	}
	if 1 != len(graph.Relationships) {
		t.Fatal("悬空连接未被丢弃: ", len(graph.Relationships))
	}
	if 11 != graph.Relationships[0].Id {
		t.Error("保留的连接Id不符: ", graph.Relationships[0].Id)
	}
	// 悬空连接不影响其它节点的排序
	order := topologicalOrder(graph)
	if 2 != len(order) {
		t.Error("排序结果不符: ", order)
	}
}

func TestDecodeGraphMalformedPayload(t *testing.T) {
	if _, err := decodeGraph([]byte(`{"data": [broken`), nopDebugf); nil == err {
		t.Error("非法JSON应当返回错误")
	}
}

func TestLoadGraphKeepsStateOnFailure(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	good := []byte(`{"data":{"n":[{"id":1,"aId":28,"k":"Final","i":[{"id":101,"dt":"boolean"}],"o":[]}],"r":[]}}`)
	if !engine.LoadGraph(1, good) {
		t.Fatal("装载合法定义失败")
	}
	if engine.LoadGraph(1, []byte(`not a graph`)) {
		t.Fatal("非法定义不应当装载成功")
	}
	// 旧图保持不变
	if graph, ok := engine.graphs[1]; !ok || 1 != len(graph.Nodes) {
		t.Error("装载失败后旧图被改动")
	}
}
