package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var errNilValue = errors.New("nil value")

// Seconds bounds for float milliseconds that still fit an int64 millisecond count.
const (
	minUnixSec = float64(math.MinInt64) / 1000
	maxUnixSec = float64(math.MaxInt64) / 1000
)

func coerce(value any, loc *time.Location) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, errNilValue
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, errNilValue
		}
		return *v, nil
	case string:
		return cast.ToTimeInDefaultLocationE(strings.TrimSpace(v), loc)
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return time.UnixMilli(ms), nil
		}
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, err
		}
		return fromFloatMillis(f)
	case float32:
		return fromFloatMillis(float64(v))
	case float64:
		return fromFloatMillis(v)
	case uint, uint64:
		u, err := cast.ToUint64E(v)
		if err != nil {
			return time.Time{}, err
		}
		if u > math.MaxInt64 {
			return time.Time{}, fmt.Errorf("timestamp %d out of range", u)
		}
		return time.UnixMilli(int64(u)), nil
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		ms, err := cast.ToInt64E(v)
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", value)
	}
}

func fromFloatMillis(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, fmt.Errorf("non-finite timestamp %v", ms)
	}
	sec := math.Floor(ms / 1000)
	if sec < minUnixSec || sec >= maxUnixSec {
		return time.Time{}, fmt.Errorf("timestamp %v out of range", ms)
	}
	nsec := math.Round((ms - sec*1000) * float64(time.Millisecond))
	return time.Unix(int64(sec), int64(nsec)), nil
}
