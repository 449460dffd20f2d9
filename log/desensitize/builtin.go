package desensitize

// Redacted 替换敏感内容的占位符
const Redacted = "[REDACTED]"

var (
	// SecretKeyHexRule 遮蔽 64 位十六进制串（secp256k1 私钥）。
	// 压缩公钥为 66 位，不会被匹配
	SecretKeyHexRule = MustPatternRule("secret_key_hex", `\b[0-9a-fA-F]{64}\b`, Redacted)

	// 字段规则。message 为 zerolog 的消息字段，不做遮蔽
	SecretRule    = MustFieldRule("secret", Redacted)
	SecretKeyRule = MustFieldRule("secret_key", Redacted)
	PlaintextRule = MustFieldRule("plaintext", Redacted)
)

// BuiltinRules 返回内置规则。字段规则先于内容规则应用
func BuiltinRules() []Rule {
	return []Rule{
		SecretRule,
		SecretKeyRule,
		PlaintextRule,
		SecretKeyHexRule,
	}
}

// NewBuiltinHook 创建加载了内置规则的脱敏钩子
func NewBuiltinHook() *Hook {
	return NewHook(BuiltinRules()...)
}
