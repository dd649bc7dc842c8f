package metrics

import (
	"time"
)

// RecordMessagePublished records a message successfully delivered to the
// broker, including how long the publish took.
func RecordMessagePublished(driver, topic string, duration time.Duration) {
	MessagesPublishedTotal.WithLabelValues(driver, topic).Inc()
	MessagePublishDuration.Observe(duration.Seconds())
}

// RecordMessageDropped records a message discarded because the messaging
// client is running in degraded mode.
func RecordMessageDropped(topic string) {
	MessagesDroppedTotal.WithLabelValues(topic).Inc()
}

// RecordMessagePublishFailure records a publish attempt rejected by the
// broker while the client was connected.
func RecordMessagePublishFailure(driver, topic string) {
	MessagePublishFailuresTotal.WithLabelValues(driver, topic).Inc()
}

// SetMessagingDegraded updates the degraded-mode gauge. Called once at
// client construction, when the state is decided.
func SetMessagingDegraded(degraded bool) {
	if degraded {
		MessagingClientDegraded.Set(1)
		return
	}
	MessagingClientDegraded.Set(0)
}

// RecordBookEventPublished records a book lifecycle event handed to the
// messaging client. EventType is one of the entity.EventBook* constants.
func RecordBookEventPublished(eventType string) {
	BookEventsPublishedTotal.WithLabelValues(eventType).Inc()
}

// UpdateBooksTotal updates the total count of books in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateBooksTotal(count int) {
	BooksTotal.Set(float64(count))
}

// RecordDigestRun records the outcome and duration of a digest worker run.
// Status should be either "success" or "failure".
func RecordDigestRun(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	DigestRunsTotal.WithLabelValues(status).Inc()
	DigestDuration.Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_books", "insert_book").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
