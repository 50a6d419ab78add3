package xlog

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Zap = zap.NewExample()

	EnvMode  = "development"
	EnvColor = false
)

func init() {
	mode := os.Getenv("XLOG_MODE")
	if mode != "" {
		EnvMode = mode
	}

	color := os.Getenv("XLOG_COLOR")
	EnvColor = color != "" && color != "false" && color != "0"
}

// Init constructs the shared zap instance.
// The JSON log goes to a rotated file, a console copy goes to stdout.
func Init(name string, logPath string) {
	if name == "" {
		name = "x"
	}
	if logPath == "" {
		logPath = path.Join("", "logs", name+".log")
	}

	debug := EnvMode != "release"

	hook := lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    128, // MB per file
		MaxAge:     30,  // days
		MaxBackups: 30,
		Compress:   false,
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "file",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	consoleConfig := encoderConfig
	if EnvColor {
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	atomicLevel := zap.NewAtomicLevel()
	if debug {
		atomicLevel.SetLevel(zap.DebugLevel)
	} else {
		atomicLevel.SetLevel(zap.InfoLevel)
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(&hook), atomicLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(os.Stdout), atomicLevel),
	)

	Zap = zap.New(core, zap.Development(), zap.Fields(zap.String("app", name)))
	Zap.Info("zap init succeed", FileField())
}

func FileField() zap.Field {
	return zap.String("file", FileWithLineNum())
}

func FileWithLineNum() string {
	var (
		file string
		line int
	)

	for i := 0; i < 15; i++ {
		_, _file, _line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		if !strings.Contains(_file, "/pkg/xlog/") {
			file = _file
			line = _line
			break
		}
	}

	var (
		dir, fname string
	)
	ss := strings.Split(file, "/")
	if len(ss) > 0 {
		fname = ss[len(ss)-1]
	}
	if len(ss) > 1 {
		dir = ss[len(ss)-2]
	}

	return fmt.Sprintf("%s/%s:%d", dir, fname, line)
}
