package domain

// Options are the per-call request modifiers shared by every priced endpoint.
type Options struct {
	// Exchange restricts aggregation to one venue. Empty means the server's aggregate.
	Exchange string
	// TryConversion lets the server route through an intermediate currency when no
	// direct pair exists. The server enables it by default, so only false is ever sent.
	TryConversion bool
}

// DefaultOptions matches the server defaults: no exchange filter, conversion enabled.
func DefaultOptions() Options {
	return Options{TryConversion: true}
}

// Params carries the endpoint-specific query values. Which fields are read depends
// on the endpoint; symbols are passed through as given.
type Params struct {
	From      string
	To        string
	Limit     uint64
	Timestamp int64
}
