// Package notify carries user-visible, transient notifications out of the
// store, the way the web dashboard surfaced toasts. Consumers plug in their
// own sink; the store never blocks on one.
package notify

import "go.uber.org/zap"

// Notifier receives one message per user-visible outcome of a store action.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// LogNotifier writes notifications to a zap logger. It is the default sink
// for headless consumers such as the CLI.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	n.logger.Info("notification", zap.String("level", "success"), zap.String("message", message))
}

func (n *LogNotifier) Info(message string) {
	n.logger.Info("notification", zap.String("level", "info"), zap.String("message", message))
}

func (n *LogNotifier) Error(message string) {
	n.logger.Warn("notification", zap.String("level", "error"), zap.String("message", message))
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Success(string) {}
func (Noop) Info(string)    {}
func (Noop) Error(string)   {}
