package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// SetOutput перенаправляет вывод логгера (CLI пишет логи в stderr).
func SetOutput(w io.Writer) {
	if Log != nil {
		Log.SetOutput(w)
	}
}

// Warn пишет предупреждение с полями, если логгер инициализирован.
func Warn(msg string, fields logrus.Fields) {
	if Log != nil {
		Log.WithFields(fields).Warn(msg)
	}
}

// Info пишет информационное сообщение с полями, если логгер инициализирован.
func Info(msg string, fields logrus.Fields) {
	if Log != nil {
		Log.WithFields(fields).Info(msg)
	}
}

// Error пишет ошибку с полями, если логгер инициализирован.
func Error(msg string, fields logrus.Fields) {
	if Log != nil {
		Log.WithFields(fields).Error(msg)
	}
}
