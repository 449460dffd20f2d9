package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/ecies/log/desensitize"
)

// Option Logger 选项
type Option func(*Logger)

// WithLevel 设置最低输出级别
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.Level(level)
	}
}

// WithCaller 附加调用位置
func WithCaller() Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Caller().Logger()
	}
}

// WithDesensitize 写入前按 hook 的规则脱敏
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(l *Logger) {
		l.hook = hook
	}
}

// WithComponent 附加 component 字段
func WithComponent(name string) Option {
	return func(l *Logger) {
		l.Logger = l.Logger.With().Str("component", name).Logger()
	}
}
