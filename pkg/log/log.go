package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _globalL, _globalS atomic.Value

func init() {
	l, _ := newStdLogger()
	_globalL.Store(l)
	_globalS.Store(l.Sugar())
}

// newStdLogger 构造默认的标准输出 Logger，进程启动时即可用。
func newStdLogger() (*zap.Logger, error) {
	cfg := &Config{Level: "info", Format: "console", Stdout: true}
	return buildLogger(cfg)
}

// InitLogger 根据配置初始化全局 Logger。
//
// 说明：
//   - File.Filename 非空时通过 lumberjack 输出到滚动日志文件；
//   - Stdout 为 true 时同时输出到标准输出；
//   - 初始化成功后会替换全局 Logger，并返回该实例便于调用方持有。
func InitLogger(cfg *Config) (*zap.Logger, error) {
	l, err := buildLogger(cfg)
	if err != nil {
		return nil, err
	}
	ReplaceGlobals(l)
	return l, nil
}

func buildLogger(cfg *Config) (*zap.Logger, error) {
	c := *cfg
	c.fillDefaults()

	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if c.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var syncers []zapcore.WriteSyncer
	if c.File.Filename != "" {
		syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.File.Filename,
			MaxSize:    c.File.MaxSize,
			MaxAge:     c.File.MaxDays,
			MaxBackups: c.File.MaxBackups,
		}))
	}
	if c.Stdout || len(syncers) == 0 {
		stdout, _, err := zap.Open("stdout")
		if err != nil {
			return nil, err
		}
		syncers = append(syncers, stdout)
	}

	core := zapcore.NewCore(enc, zap.CombineWriteSyncers(syncers...), level)

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if !c.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...), nil
}

// ReplaceGlobals 替换全局 Logger。
func ReplaceGlobals(l *zap.Logger) {
	_globalL.Store(l)
	_globalS.Store(l.Sugar())
}

// L 返回全局 Logger，可安全地并发调用。
func L() *zap.Logger {
	return _globalL.Load().(*zap.Logger)
}

// S 返回全局 SugaredLogger。
func S() *zap.SugaredLogger {
	return _globalS.Load().(*zap.SugaredLogger)
}

// With 在全局 Logger 基础上附加字段，返回新的 Logger。
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// NewTestLogger 构造用于单元测试的 Logger，日志通过 t.Log 输出。
func NewTestLogger(t zaptest.TestingT) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(zapcore.DebugLevel))
}
