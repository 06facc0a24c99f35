// 提供了 txscript 包使用示例的测试代码。

// package txscript_test
package txscript

import (
	"encoding/hex"
	"fmt"
	"testing"
)

// 此示例演示了从十六进制编码构造脚本并查看其反汇编形式与结构分类。
// P2PKH（支付给公钥哈希值）
func TestExampleDisasmScript(t *testing.T) {
	// 从标准的 pay-to-pubkey-hash 脚本开始。
	scriptHex := "76a914128004ff2fcaf13b2b91eb654b1dc2b674f7ec6188ac"
	script, err := NewScriptFromHex(scriptHex)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("十六进制脚本:\t%s\n", script.Hex())
	fmt.Printf("脚本反汇编:\t%s\n", script)
	fmt.Println("脚本类别:", script.Class())

	// 输出:
	// 十六进制脚本: 76a914128004ff2fcaf13b2b91eb654b1dc2b674f7ec6188ac
	// 脚本反汇编: OP_DUP OP_HASH160 128004ff2fcaf13b2b91eb654b1dc2b674f7ec61 OP_EQUALVERIFY OP_CHECKSIG
	// 脚本类别: pubkeyhash
}

// 此示例演示了从汇编标记构造脚本并查看其十六进制编码。
func TestExampleAssembleScript(t *testing.T) {
	// 通常公钥哈希来自其他来源，对于本示例，只需对公钥进行硬编码。
	pubKey, err := hex.DecodeString("02" +
		"1111111111111111111111111111111111111111111111111111111111111111")
	if err != nil {
		fmt.Println(err)
		return
	}
	pubKeyHash := hex.EncodeToString(Hash160(pubKey))

	script, err := NewScriptFromASM("OP_DUP OP_HASH160 " + pubKeyHash +
		" OP_EQUALVERIFY OP_CHECKSIG")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("十六进制脚本:\t%s\n", script.Hex())
	fmt.Println("脚本类别:", script.Class())
}

// 此示例演示通过执行脚本对来验证一次花费。
// 解锁脚本提供签名和公钥，锁定脚本要求公钥的 Hash160 与嵌入的哈希一致。
func TestExampleSpendPubKeyHash(t *testing.T) {
	pubKeyHex := "02" +
		"1111111111111111111111111111111111111111111111111111111111111111"
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		fmt.Println(err)
		return
	}
	pubKeyHash := hex.EncodeToString(Hash160(pubKey))

	// 锁定脚本与解锁脚本。签名内容在本示例中不被检查，任意字节即可。
	locking, err := NewScriptFromASM("OP_DUP OP_HASH160 " + pubKeyHash +
		" OP_EQUALVERIFY OP_CHECKSIG")
	if err != nil {
		fmt.Println(err)
		return
	}
	unlocking, err := NewScriptFromASM("3045022100 " + pubKeyHex)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 通过执行脚本对来证明花费有效。
	vm, err := NewSpendEngine(unlocking, locking)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := vm.Execute(); err != nil {
		fmt.Println(err)
		return
	}
	if IsValidStack(vm.GetStack()) {
		fmt.Println("花费验证成功")
	}

	// 输出:
	// 花费验证成功
}

// 此示例演示逐条指令执行脚本并观察每一步之后的数据栈。
func TestExampleStepHook(t *testing.T) {
	script, err := NewScriptFromASM("aabb aabb OP_EQUAL")
	if err != nil {
		fmt.Println(err)
		return
	}

	vm := NewEngine(script)
	vm.SetStepHook(func(remaining []string, stack [][]byte) error {
		fmt.Printf("剩余指令: %v 栈深: %d\n", remaining, len(stack))
		return nil
	})
	if err := vm.Execute(); err != nil {
		fmt.Println(err)
		return
	}

	// 输出:
	// 剩余指令: [aabb OP_EQUAL] 栈深: 1
	// 剩余指令: [OP_EQUAL] 栈深: 2
	// 剩余指令: [] 栈深: 1
}
