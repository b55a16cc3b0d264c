package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cpucorecore/datelabel/internal/config"
)

var Log = zap.NewNop()

func InitLoggerForTest() {
	Log, _ = zap.NewDevelopment()
}

// InitLoggerWithConfig builds the process logger from the log section.
// Sync must be called on shutdown when async is on.
func InitLoggerWithConfig(cfg *config.Config) error {
	if cfg == nil {
		Log, _ = zap.NewDevelopment()
		return nil
	}

	logLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level error: %w, level:[%s]", err, cfg.Log.Level)
	}

	writeSyncer := zapcore.AddSync(os.Stdout)
	if cfg.Log.Async {
		writeSyncer = &zapcore.BufferedWriteSyncer{
			Size:          int(cfg.Log.BufferSize.Int64()),
			FlushInterval: cfg.Log.FlushInterval,
			WS:            zapcore.AddSync(os.Stdout),
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writeSyncer,
		logLevel,
	)

	Log = zap.New(core)
	return nil
}

func Sync() {
	_ = Log.Sync()
}
