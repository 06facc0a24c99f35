// 包含脚本执行引擎的核心代码，负责处理脚本的解析和执行。

package txscript

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// StepHook 在每条指令执行完成后被调用，用于外部观察执行过程。
// remaining 是尚未执行的指令序列，stack 是当前数据栈的快照（最后一项为栈顶）。
// 钩子返回非 nil 错误会中止执行，Execute 将该错误原样返回；
// 因此外部观察者可以通过返回错误来取消执行，而不是让引擎无限阻塞。
type StepHook func(remaining []string, stack [][]byte) error

// Engine 是执行脚本的虚拟机。
// 它将传入脚本的标记序列按顺序连接成一份指令列表，从头逐条消费执行。
// 每次执行都使用各自的数据栈与指令列表，独立的 Engine 之间可以并行运行。
type Engine struct {
	tokens   []string
	dstack   stack
	stepHook StepHook
}

// NewEngine 返回一个新的脚本引擎，它按给定顺序连接各脚本的标记序列并从头执行。
// 常见情形下传入解锁脚本和锁定脚本（按此顺序）。
func NewEngine(scripts ...*Script) *Engine {
	var tokens []string
	for _, script := range scripts {
		tokens = append(tokens, script.tokens...)
	}
	return &Engine{tokens: tokens}
}

// NewSpendEngine 返回验证一次花费的脚本引擎。
// 当锁定脚本是支付脚本哈希形式时，把解锁脚本的最后一个推送数据标记按嵌套脚本的十六进制编码解析为赎回脚本，
// 引擎执行解锁脚本和赎回脚本；否则按顺序执行解锁脚本和锁定脚本。
func NewSpendEngine(sigScript, pkScript *Script) (*Engine, error) {
	if pkScript.Class() != ScriptHashTy {
		return NewEngine(sigScript, pkScript), nil
	}

	if len(sigScript.tokens) == 0 {
		return nil, scriptError(ErrInvalidStackOperation,
			"signature script carries no redeem script")
	}
	redeem, err := NewScriptFromHex(sigScript.tokens[len(sigScript.tokens)-1])
	if err != nil {
		return nil, err
	}
	return NewEngine(sigScript, redeem), nil
}

// SetStepHook 设置每条指令执行后调用的观察钩子。传入 nil 清除钩子。
// 钩子是可选的，不设置时引擎以无交互方式运行。
func (vm *Engine) SetStepHook(hook StepHook) {
	vm.stepHook = hook
}

// Remaining 返回尚未执行的指令序列的副本。
func (vm *Engine) Remaining() []string {
	remaining := make([]string, len(vm.tokens))
	copy(remaining, vm.tokens)
	return remaining
}

// opcodeDup 复制栈顶元素。
//
// 栈变换: [... x] -> [... x x]
func opcodeDup(vm *Engine) error {
	return vm.dstack.DupN(1)
}

// opcodeHash160 将栈顶元素替换为其 Hash160 摘要。
//
// 栈变换: [... x] -> [... Hash160(x)]
func opcodeHash160(vm *Engine) error {
	data, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(Hash160(data))
	return nil
}

// opcodeEqual 弹出栈顶两个元素逐字节比较，相等时推送 [1]，否则推送空字节数组。
//
// 栈变换: [... x1 x2] -> [... bool]
func opcodeEqual(vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if bytes.Equal(a, b) {
		vm.dstack.PushByteArray([]byte{1})
	} else {
		vm.dstack.PushByteArray(nil)
	}
	return nil
}

// opcodeEqualVerify 弹出栈顶两个元素逐字节比较，不相等时执行致命失败。
// 成功时不推送任何值。
//
// 栈变换: [... x1 x2] -> [...]
func opcodeEqualVerify(vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if !bytes.Equal(a, b) {
		return scriptError(ErrEqualVerify, "OP_EQUALVERIFY failed")
	}
	return nil
}

// opcodeCheckSig 弹出签名和公钥但不检查其内容，恒定推送真值。
// 真实的签名验证不在本实现的范围内。
//
// 栈变换: [... sig pubkey] -> [... 1]
func opcodeCheckSig(vm *Engine) error {
	// Pops the public key then the signature, neither is inspected.
	if _, err := vm.dstack.PopByteArray(); err != nil {
		return err
	}
	if _, err := vm.dstack.PopByteArray(); err != nil {
		return err
	}
	vm.dstack.PushByteArray([]byte{1})
	return nil
}

// opcodeCheckMultiSig 按以下顺序消费栈元素后恒定推送真值：
// 所需签名数量 n（以小整数操作码的字节值编码）、n 个签名、公钥数量 m、m 个公钥，以及一个额外丢弃的元素。
// 额外的弹出重现了参考协议实现多消费一个栈元素的历史行为，为保持解释器兼容性而保留。
//
// 栈变换: [... dummy key... m sig... n] -> [... 1]
func opcodeCheckMultiSig(vm *Engine) error {
	numSigs, err := vm.popSmallInt(ErrInvalidSignatureCount)
	if err != nil {
		return err
	}
	for i := 0; i < numSigs; i++ {
		if _, err := vm.dstack.PopByteArray(); err != nil {
			return err
		}
	}

	numKeys, err := vm.popSmallInt(ErrInvalidPubKeyCount)
	if err != nil {
		return err
	}
	for i := 0; i < numKeys; i++ {
		if _, err := vm.dstack.PopByteArray(); err != nil {
			return err
		}
	}

	// The reference implementation pops one argument too many.
	if _, err := vm.dstack.PopByteArray(); err != nil {
		return err
	}

	vm.dstack.PushByteArray([]byte{1})
	return nil
}

// opcodeReturn 无条件终止执行并使脚本无效。
func opcodeReturn(vm *Engine) error {
	return scriptError(ErrEarlyReturn, "script returned early")
}

// opcodeHandlers 将已建模操作码的字节值映射到其执行函数。
// 已注册但不在此表中的操作码（数字常量）在执行时仅消费标记，不改变数据栈。
var opcodeHandlers = map[byte]func(*Engine) error{
	OP_DUP:           opcodeDup,
	OP_HASH160:       opcodeHash160,
	OP_EQUAL:         opcodeEqual,
	OP_EQUALVERIFY:   opcodeEqualVerify,
	OP_CHECKSIG:      opcodeCheckSig,
	OP_CHECKMULTISIG: opcodeCheckMultiSig,
	OP_RETURN:        opcodeReturn,
}

// popSmallInt 弹出一个元素并将其首字节按小整数操作码解释为数量。
// 元素为空或首字节不是小整数操作码时，返回带有给定错误代码的错误。
func (vm *Engine) popSmallInt(code ErrorCode) (int, error) {
	data, err := vm.dstack.PopByteArray()
	if err != nil {
		return 0, err
	}
	if len(data) == 0 || !IsSmallInt(data[0]) {
		str := fmt.Sprintf("element %x is not a small integer opcode", data)
		return 0, scriptError(code, str)
	}
	return AsSmallInt(data[0]), nil
}

// executeToken 对数据栈应用单个标记的语义。
func (vm *Engine) executeToken(token string) error {
	if code, ok := OpcodeByName(token); ok {
		if handler, ok := opcodeHandlers[code]; ok {
			return handler(vm)
		}
		// Recognized opcode without modeled semantics, consume and move on.
		return nil
	}

	// Unrecognized tokens are hex encoded data pushes.
	data, err := hex.DecodeString(token)
	if err != nil {
		str := fmt.Sprintf("push token %q is not hex encoded", token)
		return scriptError(ErrInvalidHex, str)
	}
	vm.dstack.PushByteArray(data)
	return nil
}

// Step 执行下一条指令。当全部指令执行完毕时返回的 done 为 true。
// 如果返回错误，则再调用 Step 或任何其他方法的结果是未定义的。
func (vm *Engine) Step() (done bool, err error) {
	if len(vm.tokens) == 0 {
		return true, nil
	}

	token := vm.tokens[0]
	vm.tokens = vm.tokens[1:]

	if err := vm.executeToken(token); err != nil {
		return true, err
	}

	if vm.stepHook != nil {
		if err := vm.stepHook(vm.Remaining(), vm.GetStack()); err != nil {
			return true, err
		}
	}
	return len(vm.tokens) == 0, nil
}

// Execute 执行引擎中的所有指令，执行完毕后最终数据栈可通过 GetStack 取得。
// 返回错误表示执行无法完成；执行正常完成但最终栈求值为假是另一种结果，由 IsValidStack 判断。
func (vm *Engine) Execute() error {
	done := false
	for !done {
		logrus.Tracef("%v", newLogClosure(func() string {
			return fmt.Sprintf("stepping %s", strings.Join(vm.tokens, " "))
		}))

		var err error
		done, err = vm.Step()
		if err != nil {
			return err
		}

		logrus.Tracef("%v", newLogClosure(func() string {
			// 跟踪时记录非空堆栈。
			if vm.dstack.Depth() == 0 {
				return "stack empty"
			}
			return "Stack:\n" + vm.dstack.String()
		}))
	}
	return nil
}

// getStack 以数组形式返回栈的内容，数组的最后一项是栈顶。
func getStack(s *stack) [][]byte {
	array := make([][]byte, s.Depth())
	for i := range array {
		// PeekByteArray can't fail due to overflow, already checked
		array[len(array)-i-1], _ = s.PeekByteArray(int32(i))
	}
	return array
}

// setStack 将栈的内容设置为给定的数组，数组的最后一项是栈顶。
func setStack(s *stack, data [][]byte) {
	s.stk = nil
	for i := range data {
		s.PushByteArray(data[i])
	}
}

// GetStack 返回数据栈的内容，数组的最后一项是栈顶。
// 返回的数组是副本，修改它不会影响引擎。
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// SetStack 设置数据栈的内容，数组的最后一项是栈顶。
func (vm *Engine) SetStack(data [][]byte) {
	setStack(&vm.dstack, data)
}

// IsValidStack 报告最终数据栈是否代表一次有效的花费：
// 栈非空且栈顶元素是非空字节数组。这是唯一的接受规则，不做更深层的语义检查。
func IsValidStack(stack [][]byte) bool {
	return len(stack) > 0 && len(stack[len(stack)-1]) > 0
}
