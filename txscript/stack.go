// 包含脚本执行期间使用的数据栈的实现。

package txscript

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// stack 表示字节数组的栈。栈上的对象可能与其他对象共享，使用时不得原地修改。
type stack struct {
	stk [][]byte
}

// Depth 返回栈上元素的数量。
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// PushByteArray 将给定的字节数组压入栈顶。
//
// 栈变换: [... x1 x2] -> [... x1 x2 data]
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, so)
}

// PopByteArray 弹出栈顶的值并返回。
//
// 栈变换: [... x1 x2 x3] -> [... x1 x2]
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PeekByteArray 返回栈上自顶向下第 idx 项而不移除它。
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		str := fmt.Sprintf("index %d is invalid for stack size %d", idx, sz)
		return nil, scriptError(ErrInvalidStackOperation, str)
	}
	return s.stk[sz-idx-1], nil
}

// nipN 移除栈上自顶向下第 idx 项并返回。
//
// 栈变换:
// nipN(0): [... x1 x2 x3] -> [... x1 x2]
// nipN(1): [... x1 x2 x3] -> [... x1 x3]
func (s *stack) nipN(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx > sz-1 {
		str := fmt.Sprintf("index %d is invalid for stack size %d", idx, sz)
		return nil, scriptError(ErrInvalidStackOperation, str)
	}

	so := s.stk[sz-idx-1]
	if idx == 0 {
		s.stk = s.stk[:sz-1]
	} else if idx == sz-1 {
		s1 := make([][]byte, sz-1)
		copy(s1, s.stk[1:])
		s.stk = s1
	} else {
		s1 := s.stk[sz-idx : sz]
		s.stk = s.stk[:sz-idx-1]
		s.stk = append(s.stk, s1...)
	}
	return so, nil
}

// DupN 复制栈顶的 n 个元素。
//
// 栈变换:
// DupN(1): [... x1 x2] -> [... x1 x2 x2]
// DupN(2): [... x1 x2] -> [... x1 x2 x1 x2]
func (s *stack) DupN(n int32) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to dup %d stack entries", n)
		return scriptError(ErrInvalidStackOperation, str)
	}

	// Iteratively duplicate the value n-1 down the stack n times.
	// This leaves an in-order duplicate of the top n items on the stack.
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// String 以可读格式返回栈的内容，自底向上每个元素一行，以小写十六进制表示。
func (s *stack) String() string {
	var result strings.Builder
	for _, item := range s.stk {
		if len(item) == 0 {
			result.WriteString("<empty>\n")
			continue
		}
		result.WriteString(hex.EncodeToString(item))
		result.WriteByte('\n')
	}
	return result.String()
}
