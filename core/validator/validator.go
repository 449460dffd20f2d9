// Package validator 封装 go-playground/validator，校验失败信息翻译为英文
package validator

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator 结构体校验器
type Validator interface {
	Struct(s any) error
	StructCtx(ctx context.Context, s any) error
}

// Option 校验器选项
type Option func(*Validate)

// WithTagName 使用 validate 以外的结构体标签
func WithTagName(name string) Option {
	return func(v *Validate) {
		v.engine.SetTagName(name)
	}
}

// WithValidation 注册自定义规则。自定义规则没有翻译模板，使用原始错误信息
func WithValidation(tag string, fn validator.Func) Option {
	return func(v *Validate) {
		v.rules[tag] = fn
	}
}

// Validate 默认校验器，创建后可并发使用
type Validate struct {
	engine *validator.Validate
	trans  ut.Translator
	rules  map[string]validator.Func
	err    error // 注册失败时每次校验都返回该错误
}

var (
	defaultOnce sync.Once
	defaultV    *Validate
)

// Default 返回共享的默认校验器
func Default() Validator {
	defaultOnce.Do(func() {
		defaultV = New()
	})
	return defaultV
}

// New 创建校验器
func New(opts ...Option) *Validate {
	v := &Validate{
		engine: validator.New(validator.WithRequiredStructEnabled()),
		rules:  make(map[string]validator.Func),
	}
	for _, opt := range opts {
		opt(v)
	}

	for tag, fn := range v.rules {
		v.err = errors.Join(v.err, v.engine.RegisterValidation(tag, fn))
	}

	locale := en.New()
	v.trans, _ = ut.New(locale, locale).GetTranslator(locale.Locale())
	v.err = errors.Join(v.err, en_translations.RegisterDefaultTranslations(v.engine, v.trans))

	return v
}

// Engine 返回底层 go-playground 校验器
func (v *Validate) Engine() *validator.Validate {
	return v.engine
}

// Struct 校验结构体，失败时返回 Errors
func (v *Validate) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

// StructCtx 同 Struct，ctx 传递给自定义规则
func (v *Validate) StructCtx(ctx context.Context, s any) error {
	if v.err != nil {
		return v.err
	}
	if s == nil {
		return errors.New("validator: nil target")
	}

	err := v.engine.StructCtx(ctx, s)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return v.translate(verrs)
	}
	return err
}

func (v *Validate) translate(verrs validator.ValidationErrors) Errors {
	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		msg := fe.Translate(v.trans)
		if msg == "" || msg == fe.Tag() {
			msg = fe.Error()
		}
		out[i] = FieldError{
			Field:     fe.Field(),
			Namespace: fe.Namespace(),
			Tag:       fe.Tag(),
			Message:   msg,
		}
	}
	return out
}
