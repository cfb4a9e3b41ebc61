package application

import (
	"context"
	"errors"
	"time"

	"cryptocompare-client/internal/domain"
)

var (
	ErrUpstream = errors.New("upstream error")
	ErrSink     = errors.New("sink error")
)

type historyCall struct {
	endpoint domain.Endpoint
	fsym     string
	tsym     string
	limit    uint64
	opts     domain.Options
}

type fakeMarket struct {
	records []domain.OHLCV
	err     error
	calls   []historyCall
}

func (f *fakeMarket) History(_ context.Context, e domain.Endpoint, fsym, tsym string, limit uint64, o domain.Options) ([]domain.OHLCV, error) {
	f.calls = append(f.calls, historyCall{e, fsym, tsym, limit, o})
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeSink struct {
	got []domain.Candle
	err error
}

func (f *fakeSink) Publish(_ context.Context, c domain.Candle) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, c)
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
