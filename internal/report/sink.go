// Package report turns finalized tables into CSV files, plots and terminal
// tables.
package report

import (
	"context"
	"fmt"

	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// Sink consumes a finalized table.
type Sink interface {
	Write(ctx context.Context, t pipeline.Table) error
}

// Multi writes the table to every sink in order and stops at the first
// failure.
type Multi []Sink

func (m Multi) Write(ctx context.Context, t pipeline.Table) error {
	for i, s := range m {
		if err := s.Write(ctx, t); err != nil {
			return fmt.Errorf("sink %d (%T): %w", i, s, err)
		}
	}
	return nil
}
