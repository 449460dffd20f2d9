// Package desensitize 在日志写入前遮蔽敏感内容
package desensitize

import (
	"slices"
	"sync"
)

// Hook 规则集合，按添加顺序依次应用，可并发使用
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewHook 创建空的脱敏钩子
func NewHook(rules ...Rule) *Hook {
	h := &Hook{}
	h.Add(rules...)
	return h
}

// Add 添加规则，同名规则原位替换
func (h *Hook) Add(rules ...Rule) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if i := h.index(rule.Name()); i >= 0 {
			h.rules[i] = rule
			continue
		}
		h.rules = append(h.rules, rule)
	}
}

// AddPattern 添加正则替换规则
func (h *Hook) AddPattern(name, pattern, replacement string) error {
	rule, err := NewPatternRule(name, pattern, replacement)
	if err != nil {
		return err
	}
	h.Add(rule)
	return nil
}

// AddField 添加 JSON 字段规则
func (h *Hook) AddField(field, replacement string) error {
	rule, err := NewFieldRule(field, replacement)
	if err != nil {
		return err
	}
	h.Add(rule)
	return nil
}

// Remove 移除规则，不存在时返回 false
func (h *Hook) Remove(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.index(name)
	if i < 0 {
		return false
	}
	h.rules = slices.Delete(h.rules, i, i+1)
	return true
}

// Enable 启用规则
func (h *Hook) Enable(name string) bool {
	return h.set(name, true)
}

// Disable 禁用规则
func (h *Hook) Disable(name string) bool {
	return h.set(name, false)
}

func (h *Hook) set(name string, enabled bool) bool {
	rule, ok := h.Rule(name)
	if ok {
		rule.SetEnabled(enabled)
	}
	return ok
}

// Rule 按名称查找规则
func (h *Hook) Rule(name string) (Rule, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i := h.index(name); i >= 0 {
		return h.rules[i], true
	}
	return nil, false
}

// Names 按应用顺序返回规则名称
func (h *Hook) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.rules))
	for i, rule := range h.rules {
		names[i] = rule.Name()
	}
	return names
}

// Len 返回规则数量
func (h *Hook) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rules)
}

// Apply 依次应用所有启用的规则。无规则命中时返回 p 本身
func (h *Hook) Apply(p []byte) []byte {
	if len(p) == 0 {
		return p
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, rule := range h.rules {
		if rule.Enabled() {
			p = rule.Apply(p)
		}
	}
	return p
}

// Desensitize 对字符串应用规则
func (h *Hook) Desensitize(s string) string {
	return string(h.Apply([]byte(s)))
}

// caller holds h.mu
func (h *Hook) index(name string) int {
	return slices.IndexFunc(h.rules, func(r Rule) bool { return r.Name() == name })
}
