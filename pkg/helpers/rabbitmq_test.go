package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRabbitPublisher_NotConnected(t *testing.T) {
	var p *RabbitPublisher
	assert.Error(t, p.PublishJSON(context.Background(), map[string]string{"event": "x"}))
	assert.NotPanics(t, p.Close)

	assert.Error(t, (&RabbitPublisher{Queue: "orders.created"}).PublishJSON(context.Background(), 1))
}
