package trading

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"go.uber.org/zap"
)

// PaperExecutor fills every signal at the close of the bar that produced it. No order leaves the process.
type PaperExecutor struct {
	mu     sync.Mutex
	fills  []Fill
	logger *logger.Logger
}

func NewPaperExecutor(log *logger.Logger) *PaperExecutor {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PaperExecutor{logger: log}
}

// Execute implements Executor.
func (p *PaperExecutor) Execute(ctx context.Context, signal types.Signal) (Fill, error) {
	if err := ctx.Err(); err != nil {
		return Fill{}, errors.Wrap(errors.ErrCodeOrderFailed, "execution cancelled", err)
	}

	if !signal.Type.IsAction() {
		return Fill{}, errors.Newf(errors.ErrCodeOrderFailed, "signal %s is not a trade", signal.Type)
	}

	if signal.Price <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeMarketDataMissing, "signal at %s has no price", signal.Time)
	}

	fill := Fill{
		Id:     uuid.NewString(),
		Symbol: signal.Symbol,
		Side:   signal.Type,
		Price:  signal.Price,
		Time:   signal.Time,
		Reason: signal.Reason,
	}

	p.mu.Lock()
	p.fills = append(p.fills, fill)
	p.mu.Unlock()

	p.logger.Info("Paper fill",
		zap.String("id", fill.Id),
		zap.String("symbol", fill.Symbol),
		zap.String("side", string(fill.Side)),
		zap.Float64("price", fill.Price),
	)

	return fill, nil
}

// Fills implements Executor.
func (p *PaperExecutor) Fills() []Fill {
	p.mu.Lock()
	defer p.mu.Unlock()

	fills := make([]Fill, len(p.fills))
	copy(fills, p.fills)

	return fills
}
