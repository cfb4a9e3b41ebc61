package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"cryptocompare-client/internal/domain"

	"github.com/JustinKnueppel/go-result"
	"github.com/moznion/go-optional"
)

// DecodeJSON parses a response body into a generic JSON value. Numbers are kept as
// json.Number so integer fields survive without float rounding.
func DecodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &domain.ParseError{Err: errors.New("unexpected data after top-level value")}
	}
	return v, nil
}

// ParseRecords decodes a histo* body and extracts its OHLCV records.
func ParseRecords(body []byte) ([]domain.OHLCV, error) {
	v, err := DecodeJSON(body)
	if err != nil {
		return nil, err
	}
	return ExtractRecords(v)
}

// ParsePrice decodes a price body and extracts the value keyed by target.
func ParsePrice(body []byte, target string) (float64, error) {
	v, err := DecodeJSON(body)
	if err != nil {
		return 0, err
	}
	return ExtractPrice(v, target)
}

// ExtractRecords reads the Data array of a histo* response. Records keep the
// upstream order. A single malformed record fails the whole call; no partial
// slice is returned.
func ExtractRecords(v any) ([]domain.OHLCV, error) {
	res := result.AndThen(
		result.AndThen(asObject(v, ""), func(obj map[string]any) result.Result[[]any] {
			return arrayField(obj, "", "Data")
		}),
		func(items []any) result.Result[[]domain.OHLCV] {
			out := make([]domain.OHLCV, 0, len(items))
			for i, item := range items {
				rec := extractRecord(item, fmt.Sprintf("Data[%d]", i))
				if rec.IsErr() {
					return result.Err[[]domain.OHLCV](rec.UnwrapErr())
				}
				out = append(out, rec.Unwrap())
			}
			return result.Ok(out)
		},
	)
	return unwrap(res.MapErr(upstreamMessage(v)))
}

// ExtractPrice reads a numeric value keyed by the target symbol from a top-level object.
func ExtractPrice(v any, target string) (float64, error) {
	res := result.AndThen(asObject(v, ""), func(obj map[string]any) result.Result[float64] {
		return floatField(obj, "", target)
	})
	return unwrap(res.MapErr(upstreamMessage(v)))
}

func extractRecord(v any, path string) result.Result[domain.OHLCV] {
	return result.AndThen(asObject(v, path), func(obj map[string]any) result.Result[domain.OHLCV] {
		rec := result.Map(intField(obj, path, "time"), func(t int64) domain.OHLCV {
			return domain.OHLCV{Time: t}
		})
		rec = withFloat(rec, obj, path, "open", func(r *domain.OHLCV, f float64) { r.Open = f })
		rec = withFloat(rec, obj, path, "high", func(r *domain.OHLCV, f float64) { r.High = f })
		rec = withFloat(rec, obj, path, "low", func(r *domain.OHLCV, f float64) { r.Low = f })
		rec = withFloat(rec, obj, path, "close", func(r *domain.OHLCV, f float64) { r.Close = f })
		rec = withFloat(rec, obj, path, "volumefrom", func(r *domain.OHLCV, f float64) { r.VolumeFrom = f })
		rec = withFloat(rec, obj, path, "volumeto", func(r *domain.OHLCV, f float64) { r.VolumeTo = f })
		return rec
	})
}

func withFloat(
	rec result.Result[domain.OHLCV],
	obj map[string]any, path, key string,
	set func(*domain.OHLCV, float64),
) result.Result[domain.OHLCV] {
	return result.AndThen(rec, func(r domain.OHLCV) result.Result[domain.OHLCV] {
		return result.Map(floatField(obj, path, key), func(f float64) domain.OHLCV {
			set(&r, f)
			return r
		})
	})
}

func lookup(obj map[string]any, key string) optional.Option[any] {
	v, ok := obj[key]
	if !ok {
		return optional.None[any]()
	}
	return optional.Some(v)
}

func field(obj map[string]any, path, key string) result.Result[any] {
	v, err := lookup(obj, key).Take()
	if err != nil {
		return result.Err[any](shapeErr(join(path, key), "missing key"))
	}
	return result.Ok(v)
}

func floatField(obj map[string]any, path, key string) result.Result[float64] {
	return result.AndThen(field(obj, path, key), func(v any) result.Result[float64] {
		return asFloat(v, join(path, key))
	})
}

func intField(obj map[string]any, path, key string) result.Result[int64] {
	return result.AndThen(field(obj, path, key), func(v any) result.Result[int64] {
		return asInt(v, join(path, key))
	})
}

func arrayField(obj map[string]any, path, key string) result.Result[[]any] {
	return result.AndThen(field(obj, path, key), func(v any) result.Result[[]any] {
		return asArray(v, join(path, key))
	})
}

func asObject(v any, path string) result.Result[map[string]any] {
	obj, ok := v.(map[string]any)
	if !ok {
		return result.Err[map[string]any](shapeErr(path, "expected object, got "+jsonType(v)))
	}
	return result.Ok(obj)
}

func asArray(v any, path string) result.Result[[]any] {
	arr, ok := v.([]any)
	if !ok {
		return result.Err[[]any](shapeErr(path, "expected array, got "+jsonType(v)))
	}
	return result.Ok(arr)
}

func asFloat(v any, path string) result.Result[float64] {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return result.Err[float64](shapeErr(path, fmt.Sprintf("number %s out of range", n)))
		}
		return result.Ok(f)
	case float64:
		return result.Ok(n)
	case int:
		return result.Ok(float64(n))
	case int64:
		return result.Ok(float64(n))
	default:
		return result.Err[float64](shapeErr(path, "expected number, got "+jsonType(v)))
	}
}

func asInt(v any, path string) result.Result[int64] {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return result.Err[int64](shapeErr(path, fmt.Sprintf("expected integer, got %s", n)))
		}
		return result.Ok(i)
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return result.Err[int64](shapeErr(path, fmt.Sprintf("expected integer, got %v", n)))
		}
		return result.Ok(int64(n))
	case int:
		return result.Ok(int64(n))
	case int64:
		return result.Ok(n)
	default:
		return result.Err[int64](shapeErr(path, "expected integer, got "+jsonType(v)))
	}
}

// upstreamMessage copies the API's {"Response":"Error","Message":...} text onto shape
// errors so a failed extraction says why the server refused.
func upstreamMessage(v any) func(error) error {
	return func(err error) error {
		var se *domain.ShapeError
		if !errors.As(err, &se) {
			return err
		}
		obj, ok := v.(map[string]any)
		if !ok || obj["Response"] != "Error" {
			return err
		}
		if msg, ok := obj["Message"].(string); ok {
			se.Message = msg
		}
		return err
	}
}

func unwrap[T any](r result.Result[T]) (T, error) {
	if r.IsErr() {
		var zero T
		return zero, r.UnwrapErr()
	}
	return r.Unwrap(), nil
}

func shapeErr(path, reason string) *domain.ShapeError {
	if path == "" {
		path = "$"
	}
	return &domain.ShapeError{Key: path, Reason: reason}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
