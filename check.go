package nodeflow

import "strings"

//
// Author: 陈哈哈 chenyongjia@parkingwang.com, yoojiachen@gmail.com
//

func checkIdFormat(kind, id string) {
	if "" == id || strings.Contains(id, "/") {
		log.Panicf("%s 不能为空，且不能包含'/'字符: %s", kind, id)
	}
}
