package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/domain"

	"github.com/redis/go-redis/v9"
)

var _ application.CandleSink = (*Publisher)(nil)

// Publisher sends each candle as JSON on a pub/sub channel. Nothing is stored.
type Publisher struct {
	Client  redis.UniversalClient
	Channel string
}

func New(client redis.UniversalClient, channel string) *Publisher {
	return &Publisher{Client: client, Channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, c domain.Candle) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("redis publish: encode candle: %w", err)
	}
	if err := p.Client.Publish(ctx, p.Channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.Channel, err)
	}
	return nil
}

// Ping reports whether the redis server is reachable.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
