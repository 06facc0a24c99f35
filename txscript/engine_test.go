// 包含脚本执行引擎的单元测试代码。

package txscript

import (
	"encoding/hex"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestEnginePubKeyHashSpend 测试支付公钥哈希模板的完整执行路径。
// 解锁脚本提供签名与公钥，公钥的 Hash160 与锁定脚本中嵌入的哈希一致，
// 执行应产生只含真值的最终栈。
func TestEnginePubKeyHashSpend(t *testing.T) {
	t.Parallel()

	pubKey := "02" + strings.Repeat("11", 32)
	pubKeyBytes, err := hex.DecodeString(pubKey)
	require.NoError(t, err)
	pubKeyHash := hex.EncodeToString(Hash160(pubKeyBytes))

	locking := mustScript(t, "OP_DUP OP_HASH160 "+pubKeyHash+
		" OP_EQUALVERIFY OP_CHECKSIG")
	require.Equal(t, PubKeyHashTy, locking.Class())

	unlocking := mustScript(t, strings.Repeat("30", 71)+" "+pubKey)

	vm, err := NewSpendEngine(unlocking, locking)
	require.NoError(t, err)
	require.NoError(t, vm.Execute())

	finalStack := vm.GetStack()
	require.Equal(t, [][]byte{{1}}, finalStack)
	require.True(t, IsValidStack(finalStack))
}

// TestEnginePubKeyHashMismatch 测试公钥的 Hash160 与嵌入哈希不一致时，
// 执行在 OP_EQUALVERIFY 处致命失败。
func TestEnginePubKeyHashMismatch(t *testing.T) {
	t.Parallel()

	pubKey := "02" + strings.Repeat("11", 32)
	wrongHash := strings.Repeat("00", 20)

	locking := mustScript(t, "OP_DUP OP_HASH160 "+wrongHash+
		" OP_EQUALVERIFY OP_CHECKSIG")
	require.Equal(t, PubKeyHashTy, locking.Class())

	unlocking := mustScript(t, strings.Repeat("30", 71)+" "+pubKey)

	vm, err := NewSpendEngine(unlocking, locking)
	require.NoError(t, err)
	err = vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrEqualVerify),
		"execution failed with %v, want ErrEqualVerify", err)
}

// TestEngineEarlyReturn 测试锁定脚本以 OP_RETURN 开头时，无论解锁脚本如何，
// 执行到该指令立即致命失败。
func TestEngineEarlyReturn(t *testing.T) {
	t.Parallel()

	locking := mustScript(t, "OP_RETURN deadbeef")
	require.Equal(t, NullDataTy, locking.Class())

	unlocking := mustScript(t, "aabb")

	vm, err := NewSpendEngine(unlocking, locking)
	require.NoError(t, err)
	err = vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrEarlyReturn),
		"execution failed with %v, want ErrEarlyReturn", err)
}

// TestEngineCheckMultiSig 测试多重签名桩对栈元素的消费顺序，
// 以及为兼容参考实现而保留的多弹出一个元素的历史行为。
func TestEngineCheckMultiSig(t *testing.T) {
	t.Parallel()

	// 所需签名数 2、公钥数 3、两个签名、三个公钥，外加一个会被丢弃的额外元素。
	full := mustScript(t, "ff aa bb cc 53 3030 3131 52 OP_CHECKMULTISIG")
	vm := NewEngine(full)
	require.NoError(t, vm.Execute())
	require.Equal(t, [][]byte{{1}}, vm.GetStack())

	// 缺少额外元素时，多余的弹出导致栈下溢。
	short := mustScript(t, "aa bb cc 53 3030 3131 52 OP_CHECKMULTISIG")
	vm = NewEngine(short)
	err := vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrInvalidStackOperation),
		"execution failed with %v, want ErrInvalidStackOperation", err)
}

// TestEngineCheckMultiSigBadCounts 测试数量元素不是小整数操作码字节时的错误。
func TestEngineCheckMultiSigBadCounts(t *testing.T) {
	t.Parallel()

	// 签名数量元素无效。
	vm := NewEngine(mustScript(t, "aa ff OP_CHECKMULTISIG"))
	err := vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrInvalidSignatureCount),
		"execution failed with %v, want ErrInvalidSignatureCount", err)

	// 公钥数量元素无效。
	vm = NewEngine(mustScript(t, "aa ff 3030 51 OP_CHECKMULTISIG"))
	err = vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrInvalidPubKeyCount),
		"execution failed with %v, want ErrInvalidPubKeyCount", err)
}

// TestEngineCheckSig 测试签名检查桩不检查弹出的内容且恒定推送真值。
func TestEngineCheckSig(t *testing.T) {
	t.Parallel()

	// 任意内容都会通过。
	vm := NewEngine(mustScript(t, "aa bb OP_CHECKSIG"))
	require.NoError(t, vm.Execute())
	require.Equal(t, [][]byte{{1}}, vm.GetStack())

	// 元素不足仍然是栈下溢。
	vm = NewEngine(mustScript(t, "aa OP_CHECKSIG"))
	err := vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrInvalidStackOperation),
		"execution failed with %v, want ErrInvalidStackOperation", err)
}

// TestEngineScriptHashRedeem 测试支付脚本哈希的花费路径：
// 解锁脚本的最后一个推送数据标记被解析为赎回脚本，引擎执行解锁脚本与赎回脚本。
func TestEngineScriptHashRedeem(t *testing.T) {
	t.Parallel()

	locking := mustScript(t, "OP_HASH160 "+strings.Repeat("11", 20)+" OP_EQUAL")
	require.Equal(t, ScriptHashTy, locking.Class())

	// 赎回脚本 "0101" 反汇编为一个推送数据标记 "01"。
	unlocking := mustScript(t, "aa 0101")

	vm, err := NewSpendEngine(unlocking, locking)
	require.NoError(t, err)
	require.Equal(t, []string{"aa", "0101", "01"}, vm.Remaining())

	require.NoError(t, vm.Execute())
	require.True(t, IsValidStack(vm.GetStack()))
}

// TestEngineScriptHashEmptySig 测试解锁脚本没有任何标记时无法提取赎回脚本。
func TestEngineScriptHashEmptySig(t *testing.T) {
	t.Parallel()

	locking := mustScript(t, "OP_HASH160 "+strings.Repeat("11", 20)+" OP_EQUAL")
	unlocking := mustScript(t, "")

	_, err := NewSpendEngine(unlocking, locking)
	require.Truef(t, IsErrorCode(err, ErrInvalidStackOperation),
		"NewSpendEngine failed with %v, want ErrInvalidStackOperation", err)
}

// TestEngineEvalFalse 测试执行正常完成但最终栈求值为假的情形，
// 它与执行无法完成（返回错误）是两种不同的结果。
func TestEngineEvalFalse(t *testing.T) {
	t.Parallel()

	vm := NewEngine(mustScript(t, "aa bb OP_EQUAL"))
	require.NoError(t, vm.Execute())

	finalStack := vm.GetStack()
	require.Equal(t, 1, len(finalStack))
	require.False(t, IsValidStack(finalStack))
}

// TestEngineSmallIntNoOp 测试已注册但未建模的数字常量操作码仅消费标记而不改变数据栈。
func TestEngineSmallIntNoOp(t *testing.T) {
	t.Parallel()

	vm := NewEngine(mustScript(t, "OP_1 aa OP_16 OP_FALSE"))
	require.NoError(t, vm.Execute())
	require.Equal(t, [][]byte{{0xaa}}, vm.GetStack())
}

// TestEngineUnderflow 测试需要栈元素的操作码在栈为空时的下溢错误。
func TestEngineUnderflow(t *testing.T) {
	t.Parallel()

	for _, asm := range []string{"OP_DUP", "OP_HASH160", "OP_EQUAL", "OP_EQUALVERIFY"} {
		vm := NewEngine(mustScript(t, asm))
		err := vm.Execute()
		if !IsErrorCode(err, ErrInvalidStackOperation) {
			t.Errorf("%s on an empty stack failed with %v, "+
				"want ErrInvalidStackOperation", asm, err)
		}
	}
}

// TestEngineBadPushToken 测试既不是已注册助记符也不是十六进制的标记在执行时报错。
func TestEngineBadPushToken(t *testing.T) {
	t.Parallel()

	vm := &Engine{tokens: []string{"zz"}}
	err := vm.Execute()
	require.Truef(t, IsErrorCode(err, ErrInvalidHex),
		"execution failed with %v, want ErrInvalidHex", err)
}

// TestEngineDeterminism 测试同一指令列表从空栈开始的两次执行产生相同的最终栈。
func TestEngineDeterminism(t *testing.T) {
	t.Parallel()

	const text = "abcd abcd OP_EQUAL OP_DUP aa OP_HASH160"
	run := func() [][]byte {
		vm := NewEngine(mustScript(t, text))
		if err := vm.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
		return vm.GetStack()
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical executions produced different stacks: %s vs %s",
			spew.Sdump(first), spew.Sdump(second))
	}
}

// TestEngineStepHook 测试每条指令执行后观察钩子收到的快照，以及钩子返回错误时执行中止。
func TestEngineStepHook(t *testing.T) {
	t.Parallel()

	type snapshot struct {
		remaining []string
		stack     [][]byte
	}

	vm := NewEngine(mustScript(t, "aa bb OP_EQUAL"))
	var snapshots []snapshot
	vm.SetStepHook(func(remaining []string, stack [][]byte) error {
		snapshots = append(snapshots, snapshot{remaining, stack})
		return nil
	})
	require.NoError(t, vm.Execute())

	require.Equal(t, 3, len(snapshots))
	require.Equal(t, []string{"bb", "OP_EQUAL"}, snapshots[0].remaining)
	require.Equal(t, [][]byte{{0xaa}}, snapshots[0].stack)
	require.Equal(t, []string{"OP_EQUAL"}, snapshots[1].remaining)
	require.Equal(t, [][]byte{{0xaa}, {0xbb}}, snapshots[1].stack)
	require.Equal(t, []string{}, snapshots[2].remaining)
	require.Equal(t, 1, len(snapshots[2].stack))

	// 钩子返回错误时执行以该错误中止，调用方以此取消执行。
	errStop := errors.New("observer gave up")
	vm = NewEngine(mustScript(t, "aa bb OP_EQUAL"))
	steps := 0
	vm.SetStepHook(func(remaining []string, stack [][]byte) error {
		steps++
		return errStop
	})
	err := vm.Execute()
	require.Equal(t, errStop, err)
	require.Equal(t, 1, steps)
}

// TestEngineStepDone 测试 Step 的完成信号与空引擎的行为。
func TestEngineStepDone(t *testing.T) {
	t.Parallel()

	vm := NewEngine(mustScript(t, "aa"))
	done, err := vm.Step()
	require.NoError(t, err)
	require.True(t, done)

	// 指令消费完毕后再调用 Step 仍然是完成状态。
	done, err = vm.Step()
	require.NoError(t, err)
	require.True(t, done)
}
