// Package logging builds the zap logger behind the --debug flag and routes
// the printf-style debug hooks of other packages into it.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to w. When debug is false it returns a no-op
// logger so normal runs stay quiet.
func New(w io.Writer, debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// DebugFunc adapts a logger to the SetDebugLogger hooks. Messages keep
// their "[component]" prefix from the caller.
func DebugFunc(logger *zap.Logger) func(format string, args ...any) {
	sugar := logger.Sugar()
	return func(format string, args ...any) {
		sugar.Debug(fmt.Sprintf(format, args...))
	}
}
