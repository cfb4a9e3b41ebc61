package domain

import "time"

// OHLCV is one time bucket of a histo* response.
type OHLCV struct {
	Time       int64   `json:"time"` // seconds since epoch
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	VolumeFrom float64 `json:"volumefrom"`
	VolumeTo   float64 `json:"volumeto"`
}

func (o OHLCV) Timestamp() time.Time {
	return time.Unix(o.Time, 0).UTC()
}
