package nodeflow

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// pass 一次目标节点求值过程的状态。
// memo按输出端口Id缓存本轮计算结果（终端节点以节点Id为键），
// done按节点Id记录已求值的节点，保证菱形依赖只计算一次。
type pass struct {
	graph *DeviceGraph
	table map[int]string // 设备值表，deviceId -> 线上字符串
	memo  map[int]string
	done  map[int]bool
}

// evaluateNode 对目标节点执行递归求值，返回其布尔结果。
// 终端节点（AvailableIdTerminal）的权威结果取自其首个输入端口的布尔转换，
// 而非memo表——终端节点是汇点，它的"输出"在语义上就是它的输入。
// 目标节点缺失、非终端节点无输出端口等异常情况一律退化为false，不中断求值。
func evaluateNode(graph *DeviceGraph, table map[int]string, targetNodeId int) bool {
	p := &pass{
		graph: graph,
		table: table,
		memo:  make(map[int]string),
		done:  make(map[int]bool),
	}
	p.compute(targetNodeId)

	target := graph.node(targetNodeId)
	if nil == target {
		return false
	}
	if AvailableIdTerminal == target.AvailableId && len(target.Inputs) > 0 {
		return CoerceBool(target.Inputs[0].Data)
	}
	if 0 == len(target.Outputs) {
		return false
	}
	return CoerceBool(p.memo[target.Outputs[0].Id])
}

// compute 递归求值。先解析每个输入端口的生产方并求值之，再按节点行为分发计算。
func (p *pass) compute(nodeId int) {
	if p.done[nodeId] {
		return
	}
	node := p.graph.node(nodeId)
	if nil == node {
		// 节点Id来自本图构建的排序结果，缺失属于装载异常，按无操作处理
		return
	}
	p.done[nodeId] = true

	// 输入端口取值：有连接关系的，先求值其生产节点并拷贝其输出值；
	// 无连接关系的，保留端口上次的值（或默认值）。
	inputValues := make([]string, 0, len(node.Inputs))
	for i := range node.Inputs {
		input := &node.Inputs[i]
		for _, rel := range p.graph.Relationships {
			if rel.InputId != input.Id {
				continue
			}
			producer, output := p.graph.outputPort(rel.OutputId)
			if nil == producer {
				continue
			}
			p.compute(producer.Id)
			if v, ok := p.memo[output.Id]; ok {
				input.Data = v
			}
		}
		inputValues = append(inputValues, input.Data)
	}

	op := opOf(node.AvailableId)
	switch op.class {
	case opDeviceSource:
		// 读操作：把设备值表的当前值拷贝到各输出端口，不经过通用分发
		for i := range node.Outputs {
			output := &node.Outputs[i]
			if v, ok := p.table[output.DeviceId]; ok {
				output.Data = v
				p.memo[output.Id] = v
			}
		}

	case opTerminal:
		if len(node.Inputs) > 0 {
			p.memo[node.Id] = node.Inputs[0].Data
		}

	case opLogic:
		in := make([]bool, len(inputValues))
		for i, v := range inputValues {
			in[i] = CoerceBool(v)
		}
		for len(in) < op.arity {
			in = append(in, false)
		}
		result := FormatBool(op.logic(in))
		for i := range node.Outputs {
			node.Outputs[i].Data = result
			p.memo[node.Outputs[i].Id] = result
		}

	case opMath:
		in := make([]float64, len(inputValues))
		for i, v := range inputValues {
			in[i] = CoerceNumber(v)
		}
		for len(in) < op.arity {
			in = append(in, 0)
		}
		result := FormatNumber(op.math(in))
		for i := range node.Outputs {
			node.Outputs[i].Data = result
			p.memo[node.Outputs[i].Id] = result
		}

	case opUnknown:
		// 未识别的节点类别按无操作处理，下游节点继续使用各自的默认值
	}
}
