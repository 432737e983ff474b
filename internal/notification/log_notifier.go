package notification

import (
	"context"

	"github.com/rxtech-lab/argo-trend/internal/logger"
	"go.uber.org/zap"
)

// LogNotifier writes alerts to the structured log.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &LogNotifier{log: log}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Send(_ context.Context, alert Alert) error {
	n.log.Info(alert.Message,
		zap.String("title", alert.Title),
		zap.Time("time", alert.Time),
	)

	return nil
}
