// 包含识别和处理标准交易类型的函数。

package txscript

// ScriptClass 是脚本标准类型列表的枚举。
type ScriptClass byte

// 已知的脚本支付类别。
const (
	NonStandardTy ScriptClass = iota // 没有任何公认的形式。
	PubKeyTy                         // 支付公钥。
	PubKeyHashTy                     // 支付公钥哈希。
	ScriptHashTy                     // 支付脚本哈希。
	MultiSigTy                       // 多重签名。
	NullDataTy                       // 只有空数据（可证明不可花费）。
)

// scriptClassToName 包含描述每个脚本类的字符串。
var scriptClassToName = []string{
	NonStandardTy: "nonstandard",
	PubKeyTy:      "pubkey",
	PubKeyHashTy:  "pubkeyhash",
	ScriptHashTy:  "scripthash",
	MultiSigTy:    "multisig",
	NullDataTy:    "nulldata",
}

// String 通过返回枚举脚本类的名称来实现 Stringer 接口。
// 如果枚举无效，则返回 "Invalid"。
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// isPubKeyTokens 返回标记序列是否为标准支付公钥脚本的形式：
//
//	<pubkey> OP_CHECKSIG
func isPubKeyTokens(tokens []string) bool {
	return len(tokens) == 2 && tokens[1] == "OP_CHECKSIG"
}

// isPubKeyHashTokens 返回标记序列是否为标准支付公钥哈希脚本的形式：
//
//	OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG
func isPubKeyHashTokens(tokens []string) bool {
	return len(tokens) == 5 &&
		tokens[0] == "OP_DUP" &&
		tokens[1] == "OP_HASH160" &&
		tokens[3] == "OP_EQUALVERIFY" &&
		tokens[4] == "OP_CHECKSIG"
}

// isScriptHashTokens 返回标记序列是否为标准支付脚本哈希脚本的形式：
//
//	OP_HASH160 <hash> OP_EQUAL
func isScriptHashTokens(tokens []string) bool {
	return len(tokens) == 3 &&
		tokens[0] == "OP_HASH160" &&
		tokens[2] == "OP_EQUAL"
}

// isMultiSigTokens 返回标记序列是否以 OP_CHECKMULTISIG 结尾。
// 不检查前面的数量与公钥是否构成合法的多重签名脚本。
func isMultiSigTokens(tokens []string) bool {
	return len(tokens) > 0 && tokens[len(tokens)-1] == "OP_CHECKMULTISIG"
}

// isNullDataTokens 返回标记序列是否以 OP_RETURN 开头。
func isNullDataTokens(tokens []string) bool {
	return len(tokens) > 0 && tokens[0] == "OP_RETURN"
}

// typeOfScript 按优先级顺序将标记序列归入已知的脚本类。
// 分类是纯结构性的：只检查长度和固定位置上的助记符，不验证通配位置上的数据是否是合理的公钥或哈希。
func typeOfScript(tokens []string) ScriptClass {
	switch {
	case isPubKeyTokens(tokens):
		return PubKeyTy
	case isPubKeyHashTokens(tokens):
		return PubKeyHashTy
	case isScriptHashTokens(tokens):
		return ScriptHashTy
	case isMultiSigTokens(tokens):
		return MultiSigTy
	case isNullDataTokens(tokens):
		return NullDataTy
	}
	return NonStandardTy
}

// GetScriptClass 返回所传递标记序列的类。
// 每个标记序列恰好属于一个类；不属于任何标准形式时返回 NonStandardTy。
func GetScriptClass(tokens []string) ScriptClass {
	return typeOfScript(tokens)
}
