package validator

import (
	"errors"
	"strings"
)

// FieldError 单个字段的校验失败
type FieldError struct {
	Field     string // 字段名
	Namespace string // 完整路径，如 Settings.Engine.Cipher
	Tag       string // 未通过的规则
	Message   string // 英文描述
}

// Errors 一次校验中的全部字段失败，按字段顺序排列
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Has 是否包含指定字段的失败
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// AsErrors 从错误链中取出 Errors
func AsErrors(err error) (Errors, bool) {
	var e Errors
	ok := errors.As(err, &e)
	return e, ok
}

// IsValidationError 错误链中是否有校验失败
func IsValidationError(err error) bool {
	_, ok := AsErrors(err)
	return ok
}

// HasFieldError 错误链中是否有指定字段的校验失败
func HasFieldError(err error, field string) bool {
	e, ok := AsErrors(err)
	return ok && e.Has(field)
}
