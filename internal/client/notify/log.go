package notify

import (
	"context"

	"github.com/dmitrijs2005/supportportal/internal/logging"
)

// LogNotifier writes notifications to a structured logger, for headless runs.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, severity Severity, message string) {
	switch severity {
	case Error:
		n.log.Error(ctx, message, "notification", string(severity))
	case Warning:
		n.log.Warn(ctx, message, "notification", string(severity))
	default:
		n.log.Info(ctx, message, "notification", string(severity))
	}
}
