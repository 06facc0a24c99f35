// 包含脚本语言操作码的定义，以及字节值与助记符之间的双向映射。

package txscript

import (
	"crypto/sha256"
	"strconv"
	"sync"

	"golang.org/x/crypto/ripemd160"
)

// 这些常量是脚本语言支持的操作码的字节值。
// OP_DATA_1 到 OP_DATA_75 之间的字节是长度前缀，表示接下来的 N 个字节是推送数据。
const (
	OP_0             = 0x00 // 0 - 表示数字0
	OP_FALSE         = 0x00 // 0 - 也称为OP_0，表示布尔值假
	OP_DATA_1        = 0x01 // 1 - 接下来的1个字节是数据
	OP_DATA_75       = 0x4b // 75 - 接下来的75个字节是数据
	OP_PUSHDATA1     = 0x4c // 76 - 接下来的一个字节长度值表示的字节数是数据
	OP_1             = 0x51 // 81 - 表示数字1
	OP_TRUE          = 0x51 // 81 - 也称为OP_1，表示布尔值真
	OP_2             = 0x52 // 82 - 表示数字2
	OP_3             = 0x53 // 83
	OP_4             = 0x54 // 84
	OP_5             = 0x55 // 85
	OP_6             = 0x56 // 86
	OP_7             = 0x57 // 87
	OP_8             = 0x58 // 88
	OP_9             = 0x59 // 89
	OP_10            = 0x5a // 90
	OP_11            = 0x5b // 91
	OP_12            = 0x5c // 92
	OP_13            = 0x5d // 93
	OP_14            = 0x5e // 94
	OP_15            = 0x5f // 95
	OP_16            = 0x60 // 96 - 表示数字16
	OP_RETURN        = 0x6a // 106 - 终止脚本并标记交易为无效
	OP_DUP           = 0x76 // 118 - 复制栈顶元素
	OP_EQUAL         = 0x87 // 135 - 比较栈顶两个元素是否相等
	OP_EQUALVERIFY   = 0x88 // 136 - 相当于 OP_EQUAL 后立即验证结果
	OP_HASH160       = 0xa9 // 169 - 先 SHA-256 再 RIPEMD-160
	OP_CHECKSIG      = 0xac // 172 - 检查签名（本实现为恒真桩）
	OP_CHECKMULTISIG = 0xae // 174 - 检查多重签名（本实现为恒真桩）
)

// opcodeRegistry 保存字节值与助记符之间的双向映射。
// 构造一次之后只读，可以被并发读取而无需同步。
type opcodeRegistry struct {
	names  map[byte]string
	byName map[string]byte
}

var (
	registryOnce sync.Once
	registry     *opcodeRegistry
)

// opcodes 返回进程级的操作码注册表，首次调用时惰性构造。
func opcodes() *opcodeRegistry {
	registryOnce.Do(func() {
		names := map[byte]string{
			OP_0:             "OP_0",
			OP_RETURN:        "OP_RETURN",
			OP_DUP:           "OP_DUP",
			OP_EQUAL:         "OP_EQUAL",
			OP_EQUALVERIFY:   "OP_EQUALVERIFY",
			OP_HASH160:       "OP_HASH160",
			OP_CHECKSIG:      "OP_CHECKSIG",
			OP_CHECKMULTISIG: "OP_CHECKMULTISIG",
		}
		for i := 1; i <= 16; i++ {
			names[byte(OP_1+i-1)] = "OP_" + strconv.Itoa(i)
		}

		// 反向映射由正向映射导出。
		// 另外添加 “OP_FALSE” 和 “OP_TRUE” 两个条目，它们分别是 “OP_0” 和 “OP_1” 的别名，只存在于名称到字节值的方向。
		byName := make(map[string]byte, len(names)+2)
		for value, name := range names {
			byName[name] = value
		}
		byName["OP_FALSE"] = OP_FALSE
		byName["OP_TRUE"] = OP_TRUE

		registry = &opcodeRegistry{names: names, byName: byName}
	})
	return registry
}

// OpcodeName 通过字节值查找操作码的助记符。
// 未注册的字节值返回 ok 为 false，调用方应以两位十六进制形式表示该字节。
func OpcodeName(value byte) (name string, ok bool) {
	name, ok = opcodes().names[value]
	return name, ok
}

// OpcodeByName 通过助记符（OP_CHECKMULTISIG、OP_CHECKSIG 等）查找操作码的字节值。
// 未注册的助记符返回 ok 为 false，调用方应将该标记视为十六进制编码的推送数据。
func OpcodeByName(name string) (value byte, ok bool) {
	value, ok = opcodes().byName[name]
	return value, ok
}

// IsSmallInt 返回操作码是否被视为小整数，即 OP_0 或 OP_1 到 OP_16。
func IsSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// AsSmallInt 以整数形式返回传递的操作码，根据 IsSmallInt()，该操作码必须为 true。
func AsSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}
	return int(op - (OP_1 - 1))
}

// Hash160 先对数据计算 SHA-256，再对其结果计算 RIPEMD-160，返回 20 字节的摘要。
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}
