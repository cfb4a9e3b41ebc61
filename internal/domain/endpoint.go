package domain

import (
	"fmt"
	"strings"
)

// Endpoint identifies one of the fixed market-data API paths.
// The zero value is not a valid endpoint.
type Endpoint int

const (
	CoinList Endpoint = iota + 1
	Price
	PriceMulti
	PriceMultiFull
	PriceHistorical
	HistoDay
	HistoHour
	HistoMinute
)

var endpointPaths = map[Endpoint]string{
	CoinList:        "all/coinlist",
	Price:           "price",
	PriceMulti:      "pricemulti",
	PriceMultiFull:  "pricemultifull",
	PriceHistorical: "pricehistorical",
	HistoDay:        "histoday",
	HistoHour:       "histohour",
	HistoMinute:     "histominute",
}

var endpointNames = map[Endpoint]string{
	CoinList:        "CoinList",
	Price:           "Price",
	PriceMulti:      "PriceMulti",
	PriceMultiFull:  "PriceMultiFull",
	PriceHistorical: "PriceHistorical",
	HistoDay:        "HistoDay",
	HistoHour:       "HistoHour",
	HistoMinute:     "HistoMinute",
}

// Path returns the path segment below the API base, or "" for an invalid endpoint.
func (e Endpoint) Path() string { return endpointPaths[e] }

func (e Endpoint) Valid() bool {
	_, ok := endpointPaths[e]
	return ok
}

// IsHistory reports whether the endpoint returns a Data array of OHLCV buckets.
func (e Endpoint) IsHistory() bool {
	return e == HistoDay || e == HistoHour || e == HistoMinute
}

func (e Endpoint) String() string {
	if n, ok := endpointNames[e]; ok {
		return n
	}
	return fmt.Sprintf("Endpoint(%d)", int(e))
}

// ParseEndpoint accepts either the endpoint name ("HistoMinute") or its path ("histominute"),
// case-insensitively.
func ParseEndpoint(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	for e, name := range endpointNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, endpointPaths[e]) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEndpoint, s)
}
