// 包含延迟求值的日志辅助工具。

package txscript

// logClosure 包装一个返回字符串的函数，使开销较大的日志格式化推迟到日志真正输出时才执行。
type logClosure func() string

func (c logClosure) String() string {
	return c()
}

func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
