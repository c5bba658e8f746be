package nodeflow

import (
	"encoding/json"

	"github.com/pkg/errors"
)

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// 决策图定义的线上JSON结构：{ data: { n: [Node...], r: [Relationship...] } }
// 字段名压缩以适应嵌入式侧的传输开销。

type wireInput struct {
	Id       int    `json:"id"`
	DataType string `json:"dt"`
	Data     string `json:"d"`
}

type wireOutput struct {
	Id       int    `json:"id"`
	DataType string `json:"dt"`
	DeviceId int    `json:"dId"`
	ConfigId int    `json:"cId"`
}

type wireNode struct {
	Id          int          `json:"id"`
	AvailableId int          `json:"aId"`
	Kind        string       `json:"k"`
	Inputs      []wireInput  `json:"i"`
	Outputs     []wireOutput `json:"o"`
}

type wireRelationship struct {
	Id       int `json:"id"`
	InputId  int `json:"i"`
	OutputId int `json:"o"`
	ConfigId int `json:"c"`
}

type wireGraph struct {
	Data struct {
		Nodes         []wireNode         `json:"n"`
		Relationships []wireRelationship `json:"r"`
	} `json:"data"`
}

// decodeGraph 解析并校验决策图定义。
// 输入端口未提供初始值时默认为NullData。
// 两端端口Id无法解析到图内端口的连接关系将被丢弃并记录日志，不参与排序与求值。
// 解析失败时返回错误，不产生任何图对象。
func decodeGraph(payload []byte, debugf func(format string, args ...interface{})) (*DeviceGraph, error) {
	wire := new(wireGraph)
	if err := json.Unmarshal(payload, wire); nil != err {
		return nil, errors.WithMessage(err, "决策图JSON解析失败")
	}

	graph := &DeviceGraph{
		Nodes:         make([]Node, 0, len(wire.Data.Nodes)),
		Relationships: make([]Relationship, 0, len(wire.Data.Relationships)),
	}

	// 收集所有合法端口Id，输入输出合并为一个集合
	validPortIds := make(map[int]struct{})

	for _, wn := range wire.Data.Nodes {
		node := Node{
			Id:          wn.Id,
			AvailableId: wn.AvailableId,
			Kind:        wn.Kind,
			Inputs:      make([]Input, 0, len(wn.Inputs)),
			Outputs:     make([]Output, 0, len(wn.Outputs)),
		}
		for _, wi := range wn.Inputs {
			data := wi.Data
			if "" == data {
				data = NullData
			}
			node.Inputs = append(node.Inputs, Input{
				Id:       wi.Id,
				DataType: wi.DataType,
				Data:     data,
			})
			validPortIds[wi.Id] = struct{}{}
		}
		for _, wo := range wn.Outputs {
			node.Outputs = append(node.Outputs, Output{
				Id:       wo.Id,
				DataType: wo.DataType,
				Data:     NullData,
				DeviceId: wo.DeviceId,
				ConfigId: wo.ConfigId,
			})
			validPortIds[wo.Id] = struct{}{}
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	for _, wr := range wire.Data.Relationships {
		_, inputOK := validPortIds[wr.InputId]
		_, outputOK := validPortIds[wr.OutputId]
		if inputOK && outputOK {
			graph.Relationships = append(graph.Relationships, Relationship{
				Id:       wr.Id,
				InputId:  wr.InputId,
				OutputId: wr.OutputId,
				ConfigId: wr.ConfigId,
			})
		} else {
			debugf("连接关系端口无法解析，已丢弃: Id= %d", wr.Id)
		}
	}

	return graph, nil
}
