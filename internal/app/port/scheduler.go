package port

import "context"

// RefreshScheduler drives periodic re-reads. It replaces an ambient
// process-wide timer with an injected object that can be torn down.
type RefreshScheduler interface {
	// Subscribe registers a callback for every tick and returns its
	// teardown func.
	Subscribe(name string, fn func(ctx context.Context)) (unsubscribe func())

	Start(ctx context.Context)
	Stop()
}
