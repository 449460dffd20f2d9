package desensitize

import (
	"io"

	"github.com/rs/zerolog"
)

// Writer 写入前应用脱敏规则
type Writer struct {
	out  io.Writer
	hook *Hook
}

var _ zerolog.LevelWriter = (*Writer)(nil)

// NewWriter 包装 out。hook 为 nil 时直接返回 out
func NewWriter(out io.Writer, hook *Hook) io.Writer {
	if hook == nil {
		return out
	}
	return &Writer{out: out, hook: hook}
}

// Write 返回 len(p)，与脱敏后的长度无关，满足 io.Writer 约定
func (w *Writer) Write(p []byte) (int, error) {
	if _, err := w.out.Write(w.hook.Apply(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteLevel 保留日志级别，供 zerolog.MultiLevelWriter 等按级别分发
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	lw, ok := w.out.(zerolog.LevelWriter)
	if !ok {
		return w.Write(p)
	}
	if _, err := lw.WriteLevel(level, w.hook.Apply(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
