package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式，取值与配置文件一致
type RotateMode string

const (
	RotateModeTime RotateMode = "time" // file-rotatelogs，按小时切分
	RotateModeSize RotateMode = "size" // lumberjack，按大小切分
)

// FileOptions 文件输出参数。文件路径为 Dir/Name.Ext
type FileOptions struct {
	Dir  string
	Name string
	Ext  string
	Mode RotateMode

	// time 模式
	MaxAgeHours   int
	RotationHours int

	// size 模式
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (o FileOptions) path(suffix string) string {
	name := o.Name
	if suffix != "" {
		name += "." + suffix
	}
	return filepath.Join(o.Dir, name+"."+o.Ext)
}

// File 按轮转模式创建文件 writer，目录不存在时自动创建
func File(o FileOptions) (io.WriteCloser, error) {
	if o.Mode != RotateModeTime && o.Mode != RotateModeSize {
		return nil, fmt.Errorf("unsupported rotate mode: %q", o.Mode)
	}
	if err := os.MkdirAll(o.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if o.Mode == RotateModeSize {
		return &lumberjack.Logger{
			Filename:   o.path(""),
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
			Compress:   o.Compress,
		}, nil
	}

	// 当前文件通过软链接 Name.Ext 访问
	w, err := rotatelogs.New(
		o.path("%Y%m%d%H%M"),
		rotatelogs.WithLinkName(o.path("")),
		rotatelogs.WithMaxAge(time.Duration(o.MaxAgeHours)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(o.RotationHours)*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("create time rotate writer: %w", err)
	}
	return w, nil
}
