package writer

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// levelTags 固定宽度的级别标签
var levelTags = map[string]string{
	zerolog.LevelTraceValue: "TRC",
	zerolog.LevelDebugValue: "DBG",
	zerolog.LevelInfoValue:  "INF",
	zerolog.LevelWarnValue:  "WRN",
	zerolog.LevelErrorValue: "ERR",
	zerolog.LevelFatalValue: "FTL",
	zerolog.LevelPanicValue: "PNC",
}

// Console 控制台 writer，写 stderr，stdout 留给命令输出
func Console() zerolog.ConsoleWriter {
	return ConsoleTo(os.Stderr, false)
}

// ConsoleTo 写到 out 的控制台格式 writer，noColor 关闭 ANSI 颜色
func ConsoleTo(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     noColor,
		TimeFormat:  time.DateTime,
		FormatLevel: levelTag,
	}
}

func levelTag(i any) string {
	s, _ := i.(string)
	if tag, ok := levelTags[s]; ok {
		return "[" + tag + "]"
	}
	return "[???]"
}
