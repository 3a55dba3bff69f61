package interfaces

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
)

// ContextSupplier provides the optional location/environment snapshot
// attached to a time session at start. Implementations live outside this
// core; both methods may report nothing without failing the start.
type ContextSupplier interface {
	// CurrentLocation returns the device location, or nil when unavailable
	CurrentLocation(ctx context.Context) (*model.Location, error)

	// EnvironmentSnapshot returns a free-text description of conditions at
	// the given location, or empty when unavailable
	EnvironmentSnapshot(ctx context.Context, loc *model.Location) (string, error)
}
