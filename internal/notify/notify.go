package notify

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notifier - поверхность уведомлений пользователя. Вызов ничего не возвращает
type Notifier interface {
	Notify(message string, kind Kind)
}

type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// LogNotifier пишет уведомления в лог
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(message string, kind Kind) {
	lvl := zapcore.InfoLevel
	if kind == KindError {
		lvl = zapcore.WarnLevel
	}
	n.log.Log(lvl, "Notify: Уведомление пользователя",
		zap.String("message", message),
		zap.String("kind", string(kind)),
	)
}

// Multi рассылает уведомление всем получателям по очереди
type Multi []Notifier

func (m Multi) Notify(message string, kind Kind) {
	for _, n := range m {
		if n != nil {
			n.Notify(message, kind)
		}
	}
}

// Discard молча отбрасывает уведомления
type Discard struct{}

func (Discard) Notify(string, Kind) {}
