package logx

import (
	"context"
	"testing"
	"time"

	"cryptocompare-client/internal/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSink_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := &Sink{Log: zap.New(core)}

	err := s.Publish(context.Background(), domain.Candle{
		FromSymbol: "ETH",
		ToSymbol:   "BTC",
		Exchange:   "CCCAGG",
		Endpoint:   "histominute",
		Record:     domain.OHLCV{Time: 1735689600, Open: 0.032, High: 0.033, Low: 0.031, Close: 0.0325},
		ObservedAt: time.Unix(1735689615, 0).UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	require.Equal(t, "candle", entry.Message)
	fields := entry.ContextMap()
	require.Equal(t, "ETH/BTC", fields["pair"])
	require.Equal(t, 0.0325, fields["close"])
	require.Equal(t, time.Unix(1735689600, 0).UTC(), fields["bucket"])
}

func TestFromContext(t *testing.T) {
	require.Same(t, L(), FromContext(context.Background()))

	l := zap.NewNop()
	ctx := WithLogger(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
}

func TestNew_Level(t *testing.T) {
	l, err := New("warn")
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zap.InfoLevel))
	require.True(t, l.Core().Enabled(zap.WarnLevel))

	l, err = New("bogus")
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.InfoLevel))
}
