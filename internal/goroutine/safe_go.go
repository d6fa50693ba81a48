package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/kerjaku-backend/internal/logger"
)

// PanicHandler вызывается после перехвата panic в горутине.
type PanicHandler func(name string, recovered interface{}, stack []byte)

// LogPanic пишет panic в структурированный лог.
func LogPanic(name string, recovered interface{}, stack []byte) {
	if logger.Log == nil {
		fmt.Printf("[ERROR] goroutine %s: panic: %v\n%s\n", name, recovered, stack)
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"goroutine": name,
		"panic":     fmt.Sprint(recovered),
		"stack":     string(stack),
	}).Error("goroutine: panic перехвачен")
}

// Runner запускает именованные горутины с перехватом panic.
type Runner struct {
	onPanic PanicHandler
}

// NewRunner создаёт Runner. nil handler означает LogPanic.
func NewRunner(onPanic PanicHandler) *Runner {
	if onPanic == nil {
		onPanic = LogPanic
	}
	return &Runner{onPanic: onPanic}
}

// Go запускает fn в отдельной горутине; возвращаемый канал закрывается после её завершения.
func (r *Runner) Go(name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if rec := recover(); rec != nil {
				r.onPanic(name, rec, debug.Stack())
			}
		}()
		fn()
	}()
	return done
}

// GoWithContext то же, что Go, но передаёт ctx в fn.
func (r *Runner) GoWithContext(ctx context.Context, name string, fn func(context.Context)) <-chan struct{} {
	return r.Go(name, func() { fn(ctx) })
}

var defaultRunner = NewRunner(nil)

// SafeGo запускает горутину через Runner с логированием panic.
func SafeGo(name string, fn func()) <-chan struct{} {
	return defaultRunner.Go(name, fn)
}
