package nodeflow

//
// Author: 陈哈哈 yoojiachen@gmail.com
//

// topologicalOrder 计算决策图的节点求值顺序。
// 依据连接关系把端口Id映射到所属节点，从输出节点（生产方）指向输入节点（消费方）
// 建立有向边，按Kahn算法输出拓扑序列。
// 图中存在环时返回nil，调用方须跳过该设备本轮求值。
// 没有任何连接关系的孤立节点不参与排序，也不参与求值。
func topologicalOrder(graph *DeviceGraph) []int {
	// 端口Id到所属节点Id的映射
	portOwner := make(map[int]int)
	for _, node := range graph.Nodes {
		for _, input := range node.Inputs {
			portOwner[input.Id] = node.Id
		}
		for _, output := range node.Outputs {
			portOwner[output.Id] = node.Id
		}
	}

	adjacency := make(map[int][]int)
	inDegree := make(map[int]int)
	for _, rel := range graph.Relationships {
		consumer := portOwner[rel.InputId]
		producer := portOwner[rel.OutputId]
		adjacency[producer] = append(adjacency[producer], consumer)
		inDegree[consumer]++
		if _, ok := inDegree[producer]; !ok {
			inDegree[producer] = 0
		}
	}

	queue := make([]int, 0, len(inDegree))
	for nodeId, degree := range inDegree {
		if 0 == degree {
			queue = append(queue, nodeId)
		}
	}

	order := make([]int, 0, len(inDegree))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		for _, next := range adjacency[current] {
			inDegree[next]--
			if 0 == inDegree[next] {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(inDegree) {
		// 环：排序结果短于注册节点数
		return nil
	}
	return order
}
