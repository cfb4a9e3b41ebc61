package application

import (
	"context"
	"testing"
	"time"

	"cryptocompare-client/internal/domain"

	"github.com/stretchr/testify/require"
)

func target() PollTarget {
	return PollTarget{
		Endpoint: domain.HistoMinute,
		From:     "ETH",
		To:       "BTC",
		Limit:    1,
		Options:  domain.Options{Exchange: "CCCAGG", TryConversion: false},
	}
}

func Test_NewPoller_RejectsInvalidTarget(t *testing.T) {
	t.Parallel()
	cases := []PollTarget{
		{From: "ETH", To: "BTC"},
		{Endpoint: domain.HistoDay, To: "BTC"},
		{Endpoint: domain.HistoDay, From: "ETH"},
		{Endpoint: domain.Price, From: "ETH", To: "BTC"},
	}
	for _, tc := range cases {
		_, err := NewPoller(&fakeMarket{}, &fakeSink{}, tc)
		require.ErrorIs(t, err, ErrBadRequest, "%+v", tc)
	}
}

func Test_Poll_PublishesNewestRecord(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 1, 1, 0, 0, 15, 0, time.UTC)
	m := &fakeMarket{records: []domain.OHLCV{
		{Time: 1735689540, Open: 0.031, Close: 0.032},
		{Time: 1735689600, Open: 0.032, Close: 0.033},
	}}
	s := &fakeSink{}
	p, err := NewPoller(m, s, target(), WithClock(&fakeClock{t: now}))
	require.NoError(t, err)

	c, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1735689600), c.Record.Time)
	require.Equal(t, "histominute", c.Endpoint)
	require.Equal(t, "CCCAGG", c.Exchange)
	require.Equal(t, now, c.ObservedAt)
	require.Len(t, s.got, 1)
	require.Equal(t, c, s.got[0])

	require.Len(t, m.calls, 1)
	require.Equal(t, historyCall{domain.HistoMinute, "ETH", "BTC", 1, domain.Options{Exchange: "CCCAGG"}}, m.calls[0])

	last, ok := p.Last()
	require.True(t, ok)
	require.Equal(t, c, last)
}

func Test_Poll_UpstreamErrorIsReturned(t *testing.T) {
	t.Parallel()
	shape := &domain.ShapeError{Endpoint: domain.HistoMinute, Key: "Data", Reason: "missing key"}
	s := &fakeSink{}
	p, err := NewPoller(&fakeMarket{err: shape}, s, target())
	require.NoError(t, err)

	_, err = p.Poll(context.Background())
	require.ErrorIs(t, err, domain.ErrShape)
	require.Empty(t, s.got)

	_, ok := p.Last()
	require.False(t, ok)
	require.ErrorIs(t, p.Ready(time.Minute), ErrNotReady)
}

func Test_Poll_EmptyData(t *testing.T) {
	t.Parallel()
	p, err := NewPoller(&fakeMarket{records: []domain.OHLCV{}}, &fakeSink{}, target())
	require.NoError(t, err)

	_, err = p.Poll(context.Background())
	require.ErrorIs(t, err, ErrNoData)
}

func Test_Poll_SinkError(t *testing.T) {
	t.Parallel()
	m := &fakeMarket{records: []domain.OHLCV{{Time: 1}}}
	p, err := NewPoller(m, &fakeSink{err: ErrSink}, target())
	require.NoError(t, err)

	_, err = p.Poll(context.Background())
	require.ErrorIs(t, err, ErrSink)
}

func Test_Ready(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := &fakeMarket{records: []domain.OHLCV{{Time: 1}}}
	p, err := NewPoller(m, &fakeSink{}, target(), WithClock(clock))
	require.NoError(t, err)

	require.ErrorIs(t, p.Ready(time.Minute), ErrNotReady)

	_, err = p.Poll(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Ready(time.Minute))

	clock.t = clock.t.Add(2 * time.Minute)
	require.ErrorIs(t, p.Ready(time.Minute), ErrNotReady)
	require.NoError(t, p.Ready(0))

	// a later failure does not hide the earlier success
	m.err = ErrUpstream
	_, err = p.Poll(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
	require.NoError(t, p.Ready(5*time.Minute))
}
