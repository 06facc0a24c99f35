// 包含处理脚本字节码的基本函数和方法。

package txscript

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// 这些是为各个脚本中的最大值指定的常量。
const (
	// MaxDirectPushSize 是单字节长度前缀可以直接推送的最大数据长度。
	MaxDirectPushSize = 75

	// MaxPushDataSize 是 OP_PUSHDATA1 前缀支持的最大数据长度。
	// 更大的推送数据不受支持。
	MaxPushDataSize = 255
)

// Script 表示一段解析后的脚本。
// 构造之后不可变：规范的小写十六进制编码、有序的助记符标记序列以及结构分类都在构造时一次性确定。
type Script struct {
	hex    string
	tokens []string
	class  ScriptClass
}

// NewScript 从文本形式构造脚本。
// 含有空格或 "OP_" 子串的文本按汇编形式解析，否则按十六进制字节串解析。
func NewScript(text string) (*Script, error) {
	trimmed := strings.TrimSpace(text)
	if strings.Contains(trimmed, " ") || strings.Contains(trimmed, "OP_") {
		return NewScriptFromASM(trimmed)
	}
	return NewScriptFromHex(trimmed)
}

// NewScriptFromHex 从十六进制编码构造脚本。大小写不敏感，规范形式为小写。
func NewScriptFromHex(hexStr string) (*Script, error) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		str := fmt.Sprintf("script hex %q: %v", hexStr, err)
		return nil, scriptError(ErrInvalidHex, str)
	}
	tokens := DisasmScript(raw)
	return &Script{
		hex:    strings.ToLower(hexStr),
		tokens: tokens,
		class:  GetScriptClass(tokens),
	}, nil
}

// NewScriptFromASM 从空白分隔的汇编标记构造脚本。
// 推送数据标记本身必须是十六进制字符串。
func NewScriptFromASM(asm string) (*Script, error) {
	tokens := strings.Fields(asm)
	raw, err := AssembleScript(tokens)
	if err != nil {
		return nil, err
	}
	return &Script{
		hex:    hex.EncodeToString(raw),
		tokens: tokens,
		class:  GetScriptClass(tokens),
	}, nil
}

// Hex 返回脚本的规范小写十六进制编码。
func (s *Script) Hex() string {
	return s.hex
}

// Bytes 返回脚本的原始字节编码。
func (s *Script) Bytes() []byte {
	raw, _ := hex.DecodeString(s.hex)
	return raw
}

// Tokens 返回脚本助记符标记序列的副本。
func (s *Script) Tokens() []string {
	tokens := make([]string, len(s.tokens))
	copy(tokens, s.tokens)
	return tokens
}

// Class 返回脚本的结构分类。
func (s *Script) Class() ScriptClass {
	return s.class
}

// String 以空格连接的汇编形式返回脚本。
func (s *Script) String() string {
	return strings.Join(s.tokens, " ")
}

// DisasmScript 将脚本字节反汇编为助记符标记序列。
// [0x01, 0x4b] 范围内的字节是长度前缀，其后的 N 个字节作为一个推送数据标记，以小写十六进制表示；
// 已注册的操作码字节成为其助记符；其他字节成为两位十六进制的字面标记。
// 声明长度超出剩余字节数的截断推送会提前结束反汇编，部分结果照常返回，不视为错误。
func DisasmScript(script []byte) []string {
	var tokens []string
	for i := 0; i < len(script); {
		op := script[i]
		i++

		if op >= OP_DATA_1 && op <= OP_DATA_75 {
			length := int(op)
			if i+length > len(script) {
				// Truncated push, accept the partial result.
				break
			}
			tokens = append(tokens, hex.EncodeToString(script[i:i+length]))
			i += length
			continue
		}
		if name, ok := OpcodeName(op); ok {
			tokens = append(tokens, name)
			continue
		}
		tokens = append(tokens, fmt.Sprintf("%02x", op))
	}
	return tokens
}

// AssembleScript 将助记符标记序列汇编为脚本字节。
// 每个标记先按已注册的助记符查找；其次按 OP_n 形式的数字常量处理，n 超出支持范围时失败；
// 否则按十六进制推送数据处理：长度不超过 75 的数据使用单字节长度前缀，
// 不超过 255 的数据使用 OP_PUSHDATA1 前缀，更大的数据不受支持。
func AssembleScript(tokens []string) ([]byte, error) {
	var script []byte
	for _, token := range tokens {
		if value, ok := OpcodeByName(token); ok {
			script = append(script, value)
			continue
		}

		if rest, hasPrefix := strings.CutPrefix(token, "OP_"); hasPrefix {
			if n, err := strconv.ParseUint(rest, 10, 8); err == nil {
				if n > 16 {
					str := fmt.Sprintf("numeric opcode %s is out of range", token)
					return nil, scriptError(ErrInvalidOpcode, str)
				}
				script = append(script, byte(OP_1-1+n))
				continue
			}
		}

		// Raw data push.
		data, err := hex.DecodeString(token)
		if err != nil {
			str := fmt.Sprintf("push token %q is not hex encoded", token)
			return nil, scriptError(ErrInvalidHex, str)
		}
		switch {
		case len(data) <= MaxDirectPushSize:
			script = append(script, byte(len(data)))
		case len(data) <= MaxPushDataSize:
			script = append(script, OP_PUSHDATA1, byte(len(data)))
		default:
			str := fmt.Sprintf("push of %d bytes exceeds the supported maximum of %d",
				len(data), MaxPushDataSize)
			return nil, scriptError(ErrElementTooBig, str)
		}
		script = append(script, data...)
	}
	return script, nil
}
