package domain

import "time"

// Candle is one polled OHLCV bucket together with the request that produced it.
type Candle struct {
	FromSymbol string    `json:"fsym"`
	ToSymbol   string    `json:"tsym"`
	Exchange   string    `json:"exchange,omitempty"`
	Endpoint   string    `json:"endpoint"`
	Record     OHLCV     `json:"record"`
	ObservedAt time.Time `json:"observed_at"`
}
