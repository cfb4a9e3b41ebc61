package provider

import (
	"fmt"
	"strconv"
	"strings"

	"cryptocompare-client/internal/domain"
)

const DefaultBaseURL = "https://min-api.cryptocompare.com/data"

// URLBuilder assembles request URLs against a fixed base address.
//
// Values are substituted verbatim. Symbols containing reserved URL characters are
// the caller's responsibility; nothing is escaped.
type URLBuilder struct {
	base string
}

func NewURLBuilder(baseURL string) URLBuilder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return URLBuilder{base: strings.TrimRight(baseURL, "/")}
}

func (b URLBuilder) BaseURL() string { return b.base }

// Build returns <base>/<path>?<query>. Query order is fixed: symbols, endpoint
// parameters (limit, aggregate, ts), then e and tryConversion.
//
// tryConversion is appended only when conversion is disabled; the server enables
// it by default. This mirrors the observed upstream client behaviour.
func (b URLBuilder) Build(e domain.Endpoint, p domain.Params, o domain.Options) (string, error) {
	if !e.Valid() {
		return "", fmt.Errorf("cryptocompare: build url: %w: %s", domain.ErrUnknownEndpoint, e)
	}

	q := make(query, 0, 8)
	switch e {
	case domain.CoinList:
		return b.base + "/" + e.Path(), nil
	case domain.Price:
		q = q.add("fsym", p.From).add("tsyms", p.To)
	case domain.PriceMulti, domain.PriceMultiFull:
		q = q.add("fsyms", p.From).add("tsyms", p.To)
	case domain.PriceHistorical:
		q = q.add("fsym", p.From).add("tsyms", p.To).add("ts", strconv.FormatInt(p.Timestamp, 10))
	case domain.HistoDay, domain.HistoHour, domain.HistoMinute:
		q = q.add("fsym", p.From).
			add("tsym", p.To).
			add("limit", strconv.FormatUint(p.Limit, 10)).
			add("aggregate", "1")
	}
	if o.Exchange != "" {
		q = q.add("e", o.Exchange)
	}
	if !o.TryConversion {
		q = q.add("tryConversion", strconv.FormatBool(o.TryConversion))
	}
	return b.base + "/" + e.Path() + "?" + q.String(), nil
}

type query []string

func (q query) add(key, value string) query { return append(q, key+"="+value) }

func (q query) String() string { return strings.Join(q, "&") }
