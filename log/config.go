package log

import (
	"github.com/kochabx/ecies/log/writer"
)

// 日志输出目标
const (
	OutputConsole = "console"
	OutputFile    = "file"
	OutputMulti   = "multi"
	OutputDiscard = "discard"
)

// Config 日志配置
type Config struct {
	Level       string     `json:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Output      string     `json:"output" mapstructure:"output" validate:"omitempty,oneof=console file multi discard"`
	Caller      bool       `json:"caller" mapstructure:"caller"`
	Desensitize bool       `json:"desensitize" mapstructure:"desensitize"`
	File        FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig 日志文件配置
type FileConfig struct {
	Filepath         string            `json:"filepath" mapstructure:"filepath"`
	Filename         string            `json:"filename" mapstructure:"filename"`
	FileExt          string            `json:"file_ext" mapstructure:"file_ext"`
	RotateMode       writer.RotateMode `json:"rotate_mode" mapstructure:"rotate_mode" validate:"omitempty,oneof=time size"`
	RotatelogsConfig RotatelogsConfig  `json:"rotatelogs_config" mapstructure:"rotatelogs_config"`
	LumberjackConfig LumberjackConfig  `json:"lumberjack_config" mapstructure:"lumberjack_config"`
}

// RotatelogsConfig 按时间轮转配置
type RotatelogsConfig struct {
	MaxAge       int `json:"max_age" mapstructure:"max_age" validate:"gte=0"`
	RotationTime int `json:"rotation_time" mapstructure:"rotation_time" validate:"gte=0"`
}

// LumberjackConfig 按大小轮转配置
type LumberjackConfig struct {
	MaxSize    int  `json:"max_size" mapstructure:"max_size" validate:"gte=0"`
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int  `json:"max_age" mapstructure:"max_age" validate:"gte=0"`
	Compress   bool `json:"compress" mapstructure:"compress"`
}

// DefaultConfig 返回默认日志配置：控制台输出，info 级别，开启脱敏
func DefaultConfig() Config {
	c := Config{
		Level:       "info",
		Output:      OutputConsole,
		Desensitize: true,
	}
	c.File.withDefaults()
	return c
}

// withDefaults 填充零值字段
func (c *FileConfig) withDefaults() {
	if c.Filepath == "" {
		c.Filepath = "log"
	}
	if c.Filename == "" {
		c.Filename = "ecies"
	}
	if c.FileExt == "" {
		c.FileExt = "log"
	}
	if c.RotateMode == "" {
		c.RotateMode = writer.RotateModeSize
	}
	if c.RotatelogsConfig.MaxAge == 0 {
		c.RotatelogsConfig.MaxAge = 24
	}
	if c.RotatelogsConfig.RotationTime == 0 {
		c.RotatelogsConfig.RotationTime = 1
	}
	if c.LumberjackConfig.MaxSize == 0 {
		c.LumberjackConfig.MaxSize = 100
	}
	if c.LumberjackConfig.MaxBackups == 0 {
		c.LumberjackConfig.MaxBackups = 5
	}
	if c.LumberjackConfig.MaxAge == 0 {
		c.LumberjackConfig.MaxAge = 30
	}
}

func (c *FileConfig) fileOptions() writer.FileOptions {
	return writer.FileOptions{
		Dir:           c.Filepath,
		Name:          c.Filename,
		Ext:           c.FileExt,
		Mode:          c.RotateMode,
		MaxAgeHours:   c.RotatelogsConfig.MaxAge,
		RotationHours: c.RotatelogsConfig.RotationTime,
		MaxSizeMB:     c.LumberjackConfig.MaxSize,
		MaxBackups:    c.LumberjackConfig.MaxBackups,
		MaxAgeDays:    c.LumberjackConfig.MaxAge,
		Compress:      c.LumberjackConfig.Compress,
	}
}
