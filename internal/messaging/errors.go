package messaging

import "errors"

var (
	// ErrEmptyTopic is returned by Publish when the topic is empty. The
	// check happens before any network or logging activity.
	ErrEmptyTopic = errors.New("topic must not be empty")
)
