package logger

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const RequestIdKey = "X-Givehub-Request-Id"

var Logger *zap.Logger

func SetupLogger() {
	logLevel := zapcore.InfoLevel
	if viper.GetString("log_level") == "debug" {
		logLevel = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	writers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if logDir := viper.GetString("log_dir"); logDir != "" {
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(logDir, "give-hub.log"),
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     30,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), logLevel)
	Logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func SysLog(s string) {
	Logger.Info(s)
}

func SysError(s string) {
	Logger.Error(s)
}

func FatalLog(s string) {
	Logger.Fatal(s)
}

func LogInfo(ctx context.Context, msg string) {
	Logger.Info(msg, requestIdField(ctx))
}

func LogWarn(ctx context.Context, msg string) {
	Logger.Warn(msg, requestIdField(ctx))
}

func LogError(ctx context.Context, msg string) {
	Logger.Error(msg, requestIdField(ctx))
}

func LogDebug(ctx context.Context, msg string) {
	Logger.Debug(msg, requestIdField(ctx))
}

func requestIdField(ctx context.Context) zap.Field {
	if ctx == nil {
		return zap.Skip()
	}
	if id, ok := ctx.Value(RequestIdKey).(string); ok && id != "" {
		return zap.String("request_id", id)
	}
	return zap.Skip()
}

func init() {
	// Tests and early boot paths may log before SetupLogger runs.
	Logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	))
}
