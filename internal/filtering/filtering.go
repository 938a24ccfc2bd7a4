package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/catalog"
)

// Filter represents a single cleanup step applied to a loaded catalog
// snapshot before any command runs against it.
type Filter interface {
	Name() string
	Validate() error
	Apply(ctx context.Context, logger *zap.Logger, snapshot *catalog.Snapshot) (Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially, mutating the snapshot in place.
func Run(ctx context.Context, logger *zap.Logger, filters []Filter, snapshot *catalog.Snapshot) error {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}
	}

	for _, f := range filters {
		info, err := f.Apply(ctx, logger, snapshot)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", f.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
	}

	return nil
}

func snapshotSize(snapshot *catalog.Snapshot) int {
	return snapshot.Talents.Len() + snapshot.Opportunities.Len()
}
