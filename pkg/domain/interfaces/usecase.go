package interfaces

import (
	"context"

	"github.com/DevMountain/dmget/pkg/domain/model"
)

// FetchUseCase downloads and extracts one archive per call
type FetchUseCase interface {
	// Run drives a request through resolve, fetch, stage, and extract. The
	// returned result is non-nil even on failure and records the state reached.
	Run(ctx context.Context, req model.Request) (*model.FetchResult, error)
}
