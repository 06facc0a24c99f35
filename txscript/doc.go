// 通常包含包的文档说明，描述 txscript 包的目的和总体用途

/*
txscript 包实现了一个最小化的交易脚本语言解释器。

该包提供三部分紧密耦合的能力：脚本的紧凑字节编码与可读汇编形式之间的双向转换、
脚本结构模板的识别，以及把多段脚本连接后在字节数组栈上解释执行的虚拟机。

# 脚本概述

脚本是基于堆栈、从左到右处理的指令序列。本实现只覆盖一小组操作码：
推送数据、复制、哈希、相等比较以及恒真的签名检查桩。
签名检查操作码刻意不做任何真实的密码学验证，它们无条件成功，
用于在不引入密钥与签名解析的情况下演练脚本的执行流程。

脚本可以从两种文本形式构造：连续的十六进制字节串，或以空白分隔的汇编标记序列
（其中推送数据标记本身是十六进制字符串）。含有空格或 "OP_" 子串的输入按汇编形式处理。

# 错误

该包返回的错误类型为 txscript.Error。
调用者可以检查断言后的 ErrorCode 字段以编程方式确定具体错误，
也可以使用便捷函数 IsErrorCode。
执行无法完成（返回错误）与执行完成但最终栈求值为假是两种不同的结果，
后者由 IsValidStack 判断。
*/
package txscript
