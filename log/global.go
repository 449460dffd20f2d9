package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/ecies/log/desensitize"
)

// G 全局日志实例：控制台输出，info 级别，开启脱敏。
// 库代码只在 debug 级别输出，默认不可见
var G = New(WithLevel(zerolog.InfoLevel), WithDesensitize(desensitize.NewBuiltinHook()))

// SetGlobalLogger 替换全局日志实例，nil 被忽略
func SetGlobalLogger(logger *Logger) {
	if logger != nil {
		G = logger
	}
}

// SetGlobalLevel 调整全局日志级别
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

func Debug() *zerolog.Event { return G.Debug() }

func Info() *zerolog.Event { return G.Info() }

func Warn() *zerolog.Event { return G.Warn() }

// Error 返回 error 级别事件，附带 pkg/errors 堆栈（如果有）
func Error() *zerolog.Event { return G.Error().Stack() }
