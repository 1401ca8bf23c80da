package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClient is the Redis pub/sub implementation of Client. Each event
// name maps to the channel "<prefix>:<event>". Delivery is best-effort,
// at-most-once: subscribers that are not connected when a message is
// published never see it, matching the channel contract.
type RedisClient struct {
	rdb    *redis.Client
	prefix string
	logger *logrus.Logger

	mu       sync.Mutex
	pubsub   *redis.PubSub
	handlers map[string][]Handler
}

func NewRedisClient(rdb *redis.Client, channelPrefix string, logger *logrus.Logger) *RedisClient {
	return &RedisClient{
		rdb:      rdb,
		prefix:   channelPrefix,
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// On registers a handler for an inbound event name.
func (c *RedisClient) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], h)
}

// Connect subscribes to the channels of all registered events and
// starts the receive loop.
func (c *RedisClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pubsub != nil {
		return fmt.Errorf("transport: already subscribed on prefix %s", c.prefix)
	}

	channels := make([]string, 0, len(c.handlers))
	for event := range c.handlers {
		channels = append(channels, c.channelFor(event))
	}

	pubsub := c.rdb.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("transport: failed to subscribe: %w", err)
	}
	c.pubsub = pubsub

	go c.receiveLoop(pubsub)
	return nil
}

// receiveLoop dispatches messages in arrival order on a single
// goroutine. The loop ends when the subscription is closed.
func (c *RedisClient) receiveLoop(pubsub *redis.PubSub) {
	prefixLen := len(c.prefix) + 1
	for msg := range pubsub.Channel() {
		if len(msg.Channel) <= prefixLen {
			continue
		}
		event := msg.Channel[prefixLen:]

		c.mu.Lock()
		handlers := c.handlers[event]
		c.mu.Unlock()

		for _, h := range handlers {
			h(json.RawMessage(msg.Payload))
		}
	}
	c.logger.Debug("redis receive loop finished")
}

// Emit publishes an event to its channel.
func (c *RedisClient) Emit(event string, payload any) error {
	c.mu.Lock()
	connected := c.pubsub != nil
	c.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("transport: failed to marshal %s payload: %w", event, err)
	}
	if err := c.rdb.Publish(context.Background(), c.channelFor(event), data).Err(); err != nil {
		return fmt.Errorf("transport: failed to publish %s event: %w", event, err)
	}
	return nil
}

// Close tears down the subscription; the receive loop drains and exits.
func (c *RedisClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pubsub == nil {
		return nil
	}
	err := c.pubsub.Close()
	c.pubsub = nil
	return err
}

func (c *RedisClient) channelFor(event string) string {
	return c.prefix + ":" + event
}
