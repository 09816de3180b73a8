package forecast

import (
	"context"
	"fmt"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
)

// BatchReader loads a single batch snapshot.
type BatchReader interface {
	GetBatch(ctx context.Context, id string) (models.Batch, error)
}

// Local serves forecasts generated in-process from stored batch populations.
type Local struct {
	batches BatchReader
}

// NewLocal wires a generator-backed forecast source.
func NewLocal(batches BatchReader) *Local {
	return &Local{batches: batches}
}

// Forecast generates the forecast for batchID.
func (l *Local) Forecast(ctx context.Context, batchID string) (models.Forecast, error) {
	b, err := l.batches.GetBatch(ctx, batchID)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("load batch %s: %w", batchID, err)
	}
	return models.Forecast{BatchName: b.Name, Entries: Generate(b.StartingPopulation)}, nil
}
