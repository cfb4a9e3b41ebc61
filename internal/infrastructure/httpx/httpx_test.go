package httpx

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"cryptocompare-client/internal/domain"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClientRT(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Timeout: 2 * time.Second}
}

func TestGet_200ReturnsBody(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(`{"USD":1}`)), Header: make(http.Header), Request: r}, nil
	}))
	c := &Client{HTTP: rt}
	body, err := c.Get(context.Background(), "http://example.com/data/price")
	require.NoError(t, err)
	require.Equal(t, `{"USD":1}`, string(body))
	require.Equal(t, 1, calls)
}

type tempTimeoutErr struct{}

func (tempTimeoutErr) Error() string   { return "timeout" }
func (tempTimeoutErr) Timeout() bool   { return true }
func (tempTimeoutErr) Temporary() bool { return true }

func TestGet_TransportErrorIsNetworkError_NoRetry(t *testing.T) {
	var calls int
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		var ne net.Error = tempTimeoutErr{}
		return nil, ne
	}))
	c := &Client{HTTP: rt}
	_, err := c.Get(context.Background(), "http://example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.NotErrorIs(t, err, domain.ErrParse)

	var ne net.Error
	require.True(t, errors.As(err, &ne))
	require.True(t, ne.Timeout())
	require.Equal(t, 1, calls)
}

func TestGet_Non2xxIsNetworkError(t *testing.T) {
	for _, code := range []int{400, 404, 429, 500, 503} {
		rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader("bad")), Header: make(http.Header), Request: r}, nil
		}))
		c := &Client{HTTP: rt}
		_, err := c.Get(context.Background(), "http://example.com")
		require.ErrorIs(t, err, domain.ErrNetwork)

		var ne *domain.NetworkError
		require.True(t, errors.As(err, &ne))
		require.Equal(t, code, ne.StatusCode)
	}
}

func TestGet_InvalidJSONIsNotChecked(t *testing.T) {
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader("{x")), Header: make(http.Header), Request: r}, nil
	}))
	c := &Client{HTTP: rt}
	body, err := c.Get(context.Background(), "http://example.com")
	require.NoError(t, err)
	require.Equal(t, "{x", string(body))
}

func TestGet_CanceledContext(t *testing.T) {
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		return nil, r.Context().Err()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Client{HTTP: rt}
	_, err := c.Get(ctx, "http://example.com")
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGet_OversizedBodyIsNetworkError(t *testing.T) {
	rt := httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(`{"USD":12345}`)), Header: make(http.Header), Request: r}, nil
	}))

	c := &Client{HTTP: rt, MaxBodyBytes: 8}
	body, err := c.Get(context.Background(), "http://example.com/data/price")
	require.Nil(t, body)
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.NotErrorIs(t, err, domain.ErrParse)
	require.ErrorIs(t, err, errBodyTooLarge)

	var ne *domain.NetworkError
	require.True(t, errors.As(err, &ne))
	require.Equal(t, "http://example.com/data/price", ne.URL)
	require.Zero(t, ne.StatusCode)

	c.MaxBodyBytes = int64(len(`{"USD":12345}`))
	body, err = c.Get(context.Background(), "http://example.com/data/price")
	require.NoError(t, err)
	require.Equal(t, `{"USD":12345}`, string(body))
}
