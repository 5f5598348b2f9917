package serviceinterfaces

import (
	"context"
)

// Starter is implemented by services that need work done before serving
type Starter interface {
	Startup(ctx context.Context) error
}

// Stopper is implemented by services holding resources to release on exit
type Stopper interface {
	Shutdown(ctx context.Context) error
}
