package loader

import (
	"context"

	"github.com/arthur-debert/modstrap/pkg/types"
)

// Opener materializes module files of one format
type Opener interface {
	// Open loads the module read from candidate.Path. The returned module
	// owns its definitions, with their Module field set.
	Open(ctx context.Context, candidate types.ModuleCandidate, data []byte) (*types.LoadedModule, error)

	// Close releases everything the opener loaded
	Close(ctx context.Context) error
}
