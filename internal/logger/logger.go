package logger

import (
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006/01/02 15:04:05"

// до Init пишем в никуда, чтобы пакеты можно было тестировать без настройки логгера
var Logger = zap.NewNop()

// Init настраивает глобальный логгер. В режиме разработки - консоль с цветными уровнями и debug
func Init(development bool) error {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	config.InitialFields = map[string]any{"service": "taskboard"}

	l, err := config.Build()
	if err != nil {
		return err
	}

	Logger = l
	return nil
}

// Named - дочерний логгер для фоновых компонентов (hub, worker)
func Named(component string) *zap.Logger {
	return Logger.Named(component)
}

func Sync() {
	_ = Logger.Sync()
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Logger.Error(msg, fields...)
}

func Log(lvl zapcore.Level, msg string, fields ...zap.Field) {
	Logger.Log(lvl, msg, fields...)
}

// HttpRequestInfo пишет входящий запрос вместе с request id, если middleware его выставил
func HttpRequestInfo(r *http.Request, msg string, fields ...zap.Field) {
	all := make([]zap.Field, 0, len(fields)+5)
	all = append(all,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", r.RemoteAddr),
	)
	if r.URL.RawQuery != "" {
		all = append(all, zap.String("query", r.URL.RawQuery))
	}
	if id := r.Header.Get("X-Request-ID"); id != "" {
		all = append(all, zap.String("request_id", id))
	}
	Logger.Info(msg, append(all, fields...)...)
}
