package application

import (
	"context"

	"cryptocompare-client/internal/domain"
)

// MarketData is the typed surface of the market-data client used by the poller.
type MarketData interface {
	History(ctx context.Context, e domain.Endpoint, fsym, tsym string, limit uint64, o domain.Options) ([]domain.OHLCV, error)
}

// CandleSink receives every successfully polled candle.
type CandleSink interface {
	Publish(ctx context.Context, c domain.Candle) error
}
