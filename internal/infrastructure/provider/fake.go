package provider

import (
	"context"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/domain"
)

// Ensure Fake implements application.MarketData.
var _ application.MarketData = (*Fake)(nil)

// Fake serves a fixed candle series; used when PROVIDER=fake.
type Fake struct {
	records []domain.OHLCV
}

func NewFake(records ...domain.OHLCV) *Fake { return &Fake{records: records} }

// History returns the last limit+1 records, oldest first, like the real endpoint.
func (f *Fake) History(_ context.Context, e domain.Endpoint, _, _ string, limit uint64, _ domain.Options) ([]domain.OHLCV, error) {
	if !e.IsHistory() {
		return nil, domain.ErrUnknownEndpoint
	}
	n := uint64(len(f.records))
	if n > 0 && limit < n-1 {
		n = limit + 1
	}
	out := make([]domain.OHLCV, n)
	copy(out, f.records[uint64(len(f.records))-n:])
	return out, nil
}
