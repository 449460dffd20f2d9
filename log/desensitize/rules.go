package desensitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

// Rule 脱敏规则
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	// Apply 返回脱敏后的内容，未命中时原样返回 p
	Apply(p []byte) []byte
}

// toggle 规则启用开关，零值为启用
type toggle struct {
	disabled atomic.Bool
}

func (t *toggle) Enabled() bool {
	return !t.disabled.Load()
}

func (t *toggle) SetEnabled(enabled bool) {
	t.disabled.Store(!enabled)
}

// PatternRule 将匹配正则的内容整体替换
type PatternRule struct {
	toggle
	name        string
	re          *regexp.Regexp
	replacement []byte
}

// NewPatternRule 创建正则替换规则，replacement 按字面量写入
func NewPatternRule(name, pattern, replacement string) (*PatternRule, error) {
	if name == "" {
		return nil, errors.New("desensitize: rule name is empty")
	}
	if pattern == "" {
		return nil, fmt.Errorf("desensitize: rule %s: pattern is empty", name)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("desensitize: rule %s: %w", name, err)
	}

	return &PatternRule{name: name, re: re, replacement: []byte(replacement)}, nil
}

// MustPatternRule 同 NewPatternRule，出错时 panic，用于内置规则
func MustPatternRule(name, pattern, replacement string) *PatternRule {
	r, err := NewPatternRule(name, pattern, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *PatternRule) Name() string { return r.name }

func (r *PatternRule) Apply(p []byte) []byte {
	if !r.re.Match(p) {
		return p
	}
	return r.re.ReplaceAllLiteral(p, r.replacement)
}

// FieldRule 遮蔽 JSON 中指定字段的字符串值，支持转义字符
type FieldRule struct {
	toggle
	field    string
	re       *regexp.Regexp
	template []byte
}

// NewFieldRule 创建字段规则，规则名即字段名
func NewFieldRule(field, replacement string) (*FieldRule, error) {
	if field == "" {
		return nil, errors.New("desensitize: field name is empty")
	}

	re, err := regexp.Compile(`("` + regexp.QuoteMeta(field) + `"\s*:\s*")(?:[^"\\]|\\.)*"`)
	if err != nil {
		return nil, fmt.Errorf("desensitize: field %s: %w", field, err)
	}

	return &FieldRule{
		field:    field,
		re:       re,
		template: []byte("${1}" + strings.ReplaceAll(replacement, "$", "$$") + `"`),
	}, nil
}

// MustFieldRule 同 NewFieldRule，出错时 panic
func MustFieldRule(field, replacement string) *FieldRule {
	r, err := NewFieldRule(field, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *FieldRule) Name() string { return r.field }

func (r *FieldRule) Apply(p []byte) []byte {
	if !r.re.Match(p) {
		return p
	}
	return r.re.ReplaceAll(p, r.template)
}
