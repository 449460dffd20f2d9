package validator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSettings 测试配置结构体
type testSettings struct {
	Cipher string `validate:"required,oneof=aes-256-gcm xchacha20-poly1305"`
	Nonce  int    `validate:"omitempty,oneof=12 16 24"`
	Level  string `validate:"level"`
	Nested struct {
		Path string `validate:"required"`
	}
}

func levelValidation(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "", "debug", "info", "warn", "error":
		return true
	}
	return false
}

func validSettings() testSettings {
	s := testSettings{Cipher: "aes-256-gcm", Nonce: 16, Level: "info"}
	s.Nested.Path = "/tmp/ecies.log"
	return s
}

// TestValidatorCreation 测试校验器创建
func TestValidatorCreation(t *testing.T) {
	assert.NotNil(t, Default())
	assert.Same(t, Default(), Default())
	assert.NotNil(t, New(WithTagName("validate")).Engine())
}

// TestUnregisteredTag 测试引用未注册规则
func TestUnregisteredTag(t *testing.T) {
	s := validSettings()
	assert.Panics(t, func() { _ = New().Struct(&s) })
}

// TestBasicValidation 测试基本校验功能
func TestBasicValidation(t *testing.T) {
	v := New(WithValidation("level", levelValidation))

	s := validSettings()
	assert.NoError(t, v.Struct(&s))
}

// TestValidationErrors 测试校验错误
func TestValidationErrors(t *testing.T) {
	v := New(WithValidation("level", levelValidation))

	s := testSettings{Cipher: "des", Nonce: 8, Level: "verbose"}

	err := v.Struct(&s)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	validationErr, ok := AsErrors(err)
	require.True(t, ok)
	assert.Len(t, validationErr, 4)

	assert.True(t, HasFieldError(err, "Cipher"))
	assert.True(t, HasFieldError(err, "Nonce"))
	assert.True(t, HasFieldError(err, "Level"))
	assert.True(t, HasFieldError(err, "Path"))
	assert.False(t, HasFieldError(err, "NonExistent"))

	// 英文翻译
	assert.Contains(t, err.Error(), "Cipher must be one of")
	assert.Contains(t, err.Error(), "Path is a required field")

	for _, fe := range validationErr {
		assert.NotEmpty(t, fe.Message)
		assert.True(t, strings.HasPrefix(fe.Namespace, "testSettings."))
	}

	// 自定义规则使用原始错误信息
	assert.Contains(t, err.Error(), "'level' tag")
}

// TestWrappedValidationError 测试包装后的错误识别
func TestWrappedValidationError(t *testing.T) {
	v := New(WithValidation("level", levelValidation))

	err := v.Struct(&testSettings{})
	require.Error(t, err)

	wrapped := fmt.Errorf("config: %w", err)
	assert.True(t, IsValidationError(wrapped))
	assert.True(t, HasFieldError(wrapped, "Cipher"))
}

// TestNilTarget 测试空目标
func TestNilTarget(t *testing.T) {
	err := New().Struct(nil)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

// TestConcurrentAccess 测试并发访问
func TestConcurrentAccess(t *testing.T) {
	v := New(WithValidation("level", levelValidation))

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			s := validSettings()
			done <- v.Struct(&s)
		}()
	}

	for i := 0; i < 10; i++ {
		assert.NoError(t, <-done)
	}
}

// BenchmarkValidation 基准测试
func BenchmarkValidation(b *testing.B) {
	v := New(WithValidation("level", levelValidation))
	s := validSettings()

	for b.Loop() {
		_ = v.Struct(&s)
	}
}
