package logx

import (
	"context"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/domain"

	"go.uber.org/zap"
)

var _ application.CandleSink = (*Sink)(nil)

// Sink writes every candle as a structured log line.
type Sink struct {
	Log *zap.Logger
}

func (s *Sink) Publish(_ context.Context, c domain.Candle) error {
	log := s.Log
	if log == nil {
		log = L()
	}
	r := c.Record
	log.Info("candle",
		zap.String("pair", c.FromSymbol+"/"+c.ToSymbol),
		zap.String("exchange", c.Exchange),
		zap.String("endpoint", c.Endpoint),
		zap.Time("bucket", r.Timestamp()),
		zap.Float64("open", r.Open),
		zap.Float64("high", r.High),
		zap.Float64("low", r.Low),
		zap.Float64("close", r.Close),
		zap.Float64("volume_from", r.VolumeFrom),
		zap.Float64("volume_to", r.VolumeTo),
	)
	return nil
}
