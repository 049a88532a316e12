package port

// AnalyticsSink receives fire-and-forget product events. Implementations
// must never let delivery failures reach the caller.
type AnalyticsSink interface {
	Send(event string, properties map[string]any)
}
