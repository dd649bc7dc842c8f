// Package resilience provides reliability patterns for the application:
// circuit breakers around the database and retry logic with exponential
// backoff and jitter for worker-side operations.
//
// The messaging facade deliberately uses neither: its degradation is decided
// once at construction and publish failures are surfaced to callers.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DBConfig())
//	rows, err := cb.Execute(func() (interface{}, error) {
//	    return queryBooks()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return listRecentBooks()
//	})
package resilience
