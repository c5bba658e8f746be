package nodeflow

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

//
// Author: 陈哈哈 chenyongjia@parkingwang.com, yoojiachen@gmail.com
//

// 传感数据帧。串口、Socket等二进制接入方使用此帧格式上报设备读数，
// 避免JSON在嵌入式侧的编解码开销。帧使用小字节序：
//   Magic(1) | Kind(1) | DeviceId(4) | Payload
// Kind为布尔/整数/浮点时，Payload为8字节IEEE754浮点数；
// Kind为字符串时，Payload为2字节长度前缀加内容字节。

const (
	FrameMagic = 0x5E

	frameKindBoolean = 0x01
	frameKindInt     = 0x02
	frameKindDouble  = 0x03
	frameKindString  = 0x04
)

var (
	ErrFrameTooShort = errors.New("frame too short")
	ErrFrameMagic    = errors.New("invalid frame magic")
	ErrFrameKind     = errors.New("invalid frame kind")
)

// SensorFrame 单条设备读数
type SensorFrame struct {
	Kind     ValueKind
	DeviceId int
	Number   float64
	Text     string
}

// WireData 返回读数的线上字符串格式
func (f *SensorFrame) WireData() string {
	switch f.Kind {
	case KindBoolean:
		return FormatBool(0 != f.Number)
	case KindInt:
		return strconv.FormatInt(int64(f.Number), 10)
	case KindDouble:
		return FormatNumber(f.Number)
	default:
		return f.Text
	}
}

// Bytes 编码为帧字节
func (f *SensorFrame) Bytes() []byte {
	buffer := new(bytes.Buffer)
	buffer.WriteByte(FrameMagic)
	buffer.WriteByte(frameKindOf(f.Kind))
	putUint32(buffer, uint32(f.DeviceId))
	if KindString == f.Kind {
		putUint16(buffer, uint16(len(f.Text)))
		buffer.WriteString(f.Text)
	} else {
		putUint64(buffer, math.Float64bits(f.Number))
	}
	return buffer.Bytes()
}

// ParseSensorFrame 解析帧字节。长度不足、Magic或Kind非法时返回错误。
func ParseSensorFrame(frame []byte) (*SensorFrame, error) {
	if len(frame) < 6 {
		return nil, ErrFrameTooShort
	}
	if FrameMagic != frame[0] {
		return nil, ErrFrameMagic
	}
	out := &SensorFrame{
		DeviceId: int(binary.LittleEndian.Uint32(frame[2:6])),
	}
	payload := frame[6:]
	switch frame[1] {
	case frameKindBoolean:
		out.Kind = KindBoolean
	case frameKindInt:
		out.Kind = KindInt
	case frameKindDouble:
		out.Kind = KindDouble
	case frameKindString:
		out.Kind = KindString
	default:
		return nil, ErrFrameKind
	}
	if KindString == out.Kind {
		if len(payload) < 2 {
			return nil, ErrFrameTooShort
		}
		size := int(binary.LittleEndian.Uint16(payload[:2]))
		if len(payload) < 2+size {
			return nil, ErrFrameTooShort
		}
		out.Text = string(payload[2 : 2+size])
	} else {
		if len(payload) < 8 {
			return nil, ErrFrameTooShort
		}
		out.Number = math.Float64frombits(binary.LittleEndian.Uint64(payload[:8]))
	}
	return out, nil
}

func frameKindOf(kind ValueKind) byte {
	switch kind {
	case KindBoolean:
		return frameKindBoolean
	case KindInt:
		return frameKindInt
	case KindDouble:
		return frameKindDouble
	default:
		return frameKindString
	}
}

func putUint16(buffer *bytes.Buffer, v uint16) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	buffer.Write(b)
}

func putUint32(buffer *bytes.Buffer, v uint32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	buffer.Write(b)
}

func putUint64(buffer *bytes.Buffer, v uint64) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	buffer.Write(b)
}
