package log

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/ecies/log/desensitize"
	"github.com/kochabx/ecies/log/writer"
)

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// Logger zerolog 封装，持有脱敏钩子和需要关闭的输出
type Logger struct {
	zerolog.Logger
	hook   *desensitize.Hook
	closer io.Closer
}

// GetDesensitizeHook 返回脱敏钩子，未开启时为 nil
func (l *Logger) GetDesensitizeHook() *desensitize.Hook {
	return l.hook
}

// Close 关闭文件输出，其他输出为空操作
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel 解析日志级别，大小写不敏感，空字符串视为 info
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

// build 选项执行两次：第一次收集脱敏钩子以包装输出，第二次作用于构建好的 zerolog.Logger
func build(out io.Writer, closer io.Closer, opts ...Option) *Logger {
	l := &Logger{closer: closer}
	for _, opt := range opts {
		opt(l)
	}

	l.Logger = zerolog.New(desensitize.NewWriter(out, l.hook)).With().Timestamp().Logger()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// New 创建控制台 Logger，输出到 stderr
func New(opts ...Option) *Logger {
	return build(writer.Console(), nil, opts...)
}

// NewWriter 创建输出 JSON 到 w 的 Logger
func NewWriter(w io.Writer, opts ...Option) *Logger {
	return build(w, nil, opts...)
}

// Nop 返回丢弃所有输出的 Logger
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// NewFile 创建文件 Logger，用完需 Close
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	c.withDefaults()

	fw, err := writer.File(c.fileOptions())
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return build(fw, fw, opts...), nil
}

// NewMulti 同时输出到文件和控制台
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	c.withDefaults()

	fw, err := writer.File(c.fileOptions())
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return build(zerolog.MultiLevelWriter(fw, writer.Console()), fw, opts...), nil
}

// NewFromConfig 按配置创建 Logger
func NewFromConfig(c Config) (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	opts := []Option{WithLevel(level)}
	if c.Caller {
		opts = append(opts, WithCaller())
	}
	if c.Desensitize {
		opts = append(opts, WithDesensitize(desensitize.NewBuiltinHook()))
	}

	switch c.Output {
	case "", OutputConsole:
		return New(opts...), nil
	case OutputFile:
		return NewFile(c.File, opts...)
	case OutputMulti:
		return NewMulti(c.File, opts...)
	case OutputDiscard:
		return Nop(), nil
	default:
		return nil, fmt.Errorf("unsupported log output %q", c.Output)
	}
}
