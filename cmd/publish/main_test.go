package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookshelf/internal/messaging/driver"
)

// このバイナリのインポートグラフに全ブローカードライバが含まれることを
// 保証する。登録が欠けるとファサードは常に劣化モードで起動してしまう。
func TestBrokerDriversRegistered(t *testing.T) {
	registered := driver.Drivers()

	for _, name := range []string{"kafka", "nats", "rabbitmq"} {
		assert.Contains(t, registered, name)
	}
}

// CLI の既定トピックはアプリケーションの発行先と一致させる
func TestDefaultTopicMatchesApplication(t *testing.T) {
	assert.Equal(t, "books", defaultTopic)
}
