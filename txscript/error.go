// 包含脚本错误类型的定义。

package txscript

import "fmt"

// ErrorCode 标识一种脚本错误。
type ErrorCode int

// 这些常量用于标识特定的脚本错误。
const (
	// ErrInvalidHex 表示脚本文本或推送数据标记不是有效的十六进制编码。
	ErrInvalidHex ErrorCode = iota

	// ErrInvalidOpcode 表示 OP_n 形式的数字常量操作码超出了支持的 1 到 16 的范围。
	ErrInvalidOpcode

	// ErrElementTooBig 表示推送数据的长度超出了长度前缀所支持的范围。
	ErrElementTooBig

	// ErrInvalidStackOperation 表示操作码需要的堆栈元素多于堆栈中实际存在的元素。
	ErrInvalidStackOperation

	// ErrEqualVerify 表示 OP_EQUALVERIFY 比较的两个元素不相等。
	ErrEqualVerify

	// ErrEarlyReturn 表示脚本执行到了 OP_RETURN，脚本无条件无效。
	ErrEarlyReturn

	// ErrInvalidSignatureCount 表示 OP_CHECKMULTISIG 弹出的签名数量元素不是小整数操作码的字节值。
	ErrInvalidSignatureCount

	// ErrInvalidPubKeyCount 表示 OP_CHECKMULTISIG 弹出的公钥数量元素不是小整数操作码的字节值。
	ErrInvalidPubKeyCount

	// numErrorCodes 是错误代码的最大数量，供测试使用。
	numErrorCodes
)

// errorCodeStrings 将每个错误代码映射为其常量名称，供打印使用。
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidHex:            "ErrInvalidHex",
	ErrInvalidOpcode:         "ErrInvalidOpcode",
	ErrElementTooBig:         "ErrElementTooBig",
	ErrInvalidStackOperation: "ErrInvalidStackOperation",
	ErrEqualVerify:           "ErrEqualVerify",
	ErrEarlyReturn:           "ErrEarlyReturn",
	ErrInvalidSignatureCount: "ErrInvalidSignatureCount",
	ErrInvalidPubKeyCount:    "ErrInvalidPubKeyCount",
}

// String 以可读形式返回错误代码。
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error 标识一个与脚本相关的错误。
// 调用者可以对错误做类型断言并检查 ErrorCode 字段，以编程方式判断具体的错误原因。
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error 满足 error 接口，返回错误的描述。
func (e Error) Error() string {
	return e.Description
}

// scriptError 根据给定的错误代码和描述创建 Error。
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode 返回所传递的错误是否为脚本错误，且其错误代码与传入的代码匹配。
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
